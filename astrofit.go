// Package astrofit is the orbit-determination core's entry point: three
// thin, stateless operations (Solve, Forecast, Residuals) composed from
// the motion, residual, and solver packages beneath it. Every input and
// output is a plain value; the core keeps no persisted state.
package astrofit

import (
	"time"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/measurement"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/residual"
	"github.com/anupshinde/astrofit/solver"
	"github.com/anupshinde/astrofit/timeframe"
)

// Solve refines initial against the measurements in interval using model
// for forecasting, via Levenberg-Marquardt. The iteration logger is
// threaded through as opts.Saver rather than a bare function argument.
// step is the forecast/integrator step used to build the residual
// assembler.
func Solve(model *motion.Model, initial astrostate.OrbitInitial, interval *measurement.MeasuringInterval, step time.Duration, opts solver.SolverOptions) (solver.Result, error) {
	a := residual.NewAssembler(model, step)
	if opts.Degree != 0 {
		a.Degree = opts.Degree
	}
	s0 := initial.AsState7(0).S
	return solver.Solve(model, a, initial.X6, s0, initial.T, interval, opts)
}

// Forecast propagates initial out to initial.T + horizon under model,
// with step h, returning the resulting trajectory.
func Forecast(model *motion.Model, initial astrostate.OrbitInitial, horizon time.Duration, h time.Duration) (*forecast.Forecast, error) {
	end := initial.T.Add(horizon)
	s0 := initial.AsState7(0).S
	deriv := func(y []float64, t timeframe.Instant) ([]float64, error) {
		state := timeframe.State6FromFlat(y)
		d, err := model.Plain(state, s0, t)
		if err != nil {
			return nil, err
		}
		return d.Flatten6(), nil
	}
	return forecast.Run(initial.X6.Flatten6(), initial.T, end, h, deriv)
}

// Residuals evaluates candidate against interval's measurements under
// model with step h, returning the 2*PointsCount() residual vector
// without fitting anything: the read-only counterpart to Solve, used to
// score a state without committing to an iteration.
func Residuals(model *motion.Model, candidate astrostate.OrbitInitial, interval *measurement.MeasuringInterval, h time.Duration) (linalg.Vector, error) {
	a := residual.NewAssembler(model, h)
	s0 := candidate.AsState7(0).S
	return a.Residuals(candidate.X6, s0, candidate.T, interval)
}
