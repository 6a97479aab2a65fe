package measurement

import "github.com/anupshinde/astrofit/timeframe"

// Point is one (seance, measurement) pair yielded by MeasuringInterval
// iteration.
type Point struct {
	Seance *Seance
	M      M
}

// MeasuringInterval is a read-only view over an ordered sequence of
// seances, keeping only those whose entire measurement list lies within
// [begin, end]: a seance is an atomic unit of selection, never split
// mid-seance. It exposes forward iteration and the total scalar point
// count used to size the residual vector.
type MeasuringInterval struct {
	seances []*Seance
	begin   timeframe.Instant
	end     timeframe.Instant
}

// NewMeasuringInterval builds a view over seances, keeping only the
// seances whose First() and Last() both fall within [begin, end].
func NewMeasuringInterval(seances []*Seance, begin, end timeframe.Instant) *MeasuringInterval {
	iv := &MeasuringInterval{begin: begin, end: end}
	for _, s := range seances {
		if iv.inRange(s.First()) && iv.inRange(s.Last()) {
			iv.seances = append(iv.seances, s)
		}
	}
	return iv
}

// Begin returns the interval's lower bound.
func (iv *MeasuringInterval) Begin() timeframe.Instant { return iv.begin }

// End returns the interval's upper bound.
func (iv *MeasuringInterval) End() timeframe.Instant { return iv.end }

func (iv *MeasuringInterval) inRange(t timeframe.Instant) bool {
	return !t.Before(iv.begin) && !t.After(iv.end)
}

// PointsCount returns the total number of scalar measurements within the
// selected seances; the residual vector built from it has length
// 2*PointsCount().
func (iv *MeasuringInterval) PointsCount() int {
	n := 0
	for _, s := range iv.seances {
		n += len(s.Meas)
	}
	return n
}

// ForEach calls fn for every (seance, measurement) pair in the selected
// seances, in seance order then measurement order (both already time
// sorted). Iteration stops early if fn returns false.
func (iv *MeasuringInterval) ForEach(fn func(Point) bool) {
	for _, s := range iv.seances {
		for i := range s.Meas {
			if !fn(Point{Seance: s, M: s.Meas[i]}) {
				return
			}
		}
	}
}
