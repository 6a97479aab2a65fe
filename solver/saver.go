package solver

import (
	"github.com/sirupsen/logrus"
)

// IterationRecord is the logging unit for one accepted solver iteration,
// sufficient on its own to reconstruct the full convergence history.
type IterationRecord struct {
	Iter     int
	Residual float64 // residual norm ||r||
	V        []float64 // current parameter vector, after this iteration's correction
	DV       []float64 // accepted correction
	RV       []float64 // residual vector at this iteration
	Lambda   float64   // damping factor accepted for this iteration
}

// IterationsSaver is the logging side-effect capability invoked once per
// accepted iteration. The
// solver makes no assumptions about its implementation: no-op,
// append-to-slice, and logrus-backed variants are provided.
type IterationsSaver interface {
	Save(r IterationRecord)
}

// NoopSaver discards every record.
type NoopSaver struct{}

// Save implements IterationsSaver by doing nothing.
func (NoopSaver) Save(IterationRecord) {}

// SliceSaver accumulates every accepted record in memory, for tests and
// short-lived callers that want the full convergence history back.
type SliceSaver struct {
	Records []IterationRecord
}

// Save appends r to the saver's Records.
func (s *SliceSaver) Save(r IterationRecord) {
	s.Records = append(s.Records, r)
}

// LogrusSaver streams each accepted iteration as a structured log entry.
type LogrusSaver struct {
	Logger *logrus.Logger
}

// NewLogrusSaver wraps logger, falling back to logrus.StandardLogger if
// logger is nil.
func NewLogrusSaver(logger *logrus.Logger) *LogrusSaver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSaver{Logger: logger}
}

// Save logs r at info level with its scalar fields as structured fields;
// the vector fields are omitted from the log line itself (they are large
// and already reconstructable from V/DV for any caller that wants the
// full record) but left on the struct for in-process consumers.
func (s *LogrusSaver) Save(r IterationRecord) {
	s.Logger.WithFields(logrus.Fields{
		"iter":     r.Iter,
		"residual": r.Residual,
		"lambda":   r.Lambda,
	}).Info("solver: iteration accepted")
}
