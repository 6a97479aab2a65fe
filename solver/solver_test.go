package solver

import (
	"testing"
	"time"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/atmosphere"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/harmonics"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/measurement"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/residual"
	"github.com/anupshinde/astrofit/timeframe"
)

func instant(s string) timeframe.Instant {
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return timeframe.NewInstant(tt)
}

func twoBodyModel() *motion.Model {
	table := harmonics.NewTable(0, 3.986004418e14, 6378137.0, timeframe.EarthRotationRate, 1.0/298.257223563)
	geo, err := harmonics.NewGeopotential(table, 0)
	if err != nil {
		panic(err)
	}
	m := motion.NewModel(geo, table, 0, atmosphere.StaticProvider(atmosphere.SpaceWeather{}), false)
	m.HMin, m.HMax = -1e9, 1e9 // disable altitude gating for this synthetic Kepler test
	return m
}

func plainDeriv(model *motion.Model) func(y []float64, t timeframe.Instant) ([]float64, error) {
	return func(y []float64, t timeframe.Instant) ([]float64, error) {
		state := astrostate.State6{
			R: linalg.NewVector3(y[0], y[1], y[2]),
			V: linalg.NewVector3(y[3], y[4], y[5]),
		}
		d, err := model.Plain(state, 0, t)
		if err != nil {
			return nil, err
		}
		return []float64{d.R.X, d.R.Y, d.R.Z, d.V.X, d.V.Y, d.V.Z}, nil
	}
}

// syntheticInterval builds one noiseless seance consistent with a
// zero-degree-geopotential forecast from x0, the way residual's own tests do.
func syntheticInterval(t *testing.T, model *motion.Model, x0 timeframe.State6, epoch timeframe.Instant, times []timeframe.Instant, step time.Duration) *measurement.MeasuringInterval {
	t.Helper()
	last := times[len(times)-1]
	fc, err := forecast.Run(x0.Flatten6(), epoch, last, step, plainDeriv(model))
	if err != nil {
		t.Fatalf("forecast.Run: %v", err)
	}

	obs := linalg.Vector3{}
	var meas []measurement.M
	for _, ti := range times {
		y, err := fc.Point(ti, forecast.DefaultDegree)
		if err != nil {
			t.Fatalf("Point: %v", err)
		}
		pos := linalg.NewVector3(y[0], y[1], y[2])
		topoABS := timeframe.GRWORTToABSORT(pos.Sub(obs), ti)
		sph := timeframe.CartesianToABSSpherical(topoABS)
		meas = append(meas, measurement.NewM(ti, sph.Declination, sph.RightAscension, 5.0))
	}
	seance, err := measurement.NewSeance("obs1", obs, meas)
	if err != nil {
		t.Fatalf("NewSeance: %v", err)
	}
	return measurement.NewMeasuringInterval([]*measurement.Seance{seance}, times[0], last)
}

// TestSolveRecoversPerturbedState: a state perturbed by ~1km/1m/s must
// be recovered from
// noiseless angular measurements within a handful of iterations.
func TestSolveRecoversPerturbedState(t *testing.T) {
	model := twoBodyModel()
	epoch := instant("2024-01-01T00:00:00Z")
	x0 := timeframe.State6{R: linalg.NewVector3(7000e3, 0, 0), V: linalg.NewVector3(0, 7546, 0)}

	var times []timeframe.Instant
	for i := 1; i <= 10; i++ {
		times = append(times, epoch.Add(time.Duration(i)*60*time.Second))
	}
	iv := syntheticInterval(t, model, x0, epoch, times, 10*time.Second)

	a := residual.NewAssembler(model, 10*time.Second)
	perturbed := timeframe.State6{
		R: x0.R.Add(linalg.NewVector3(1000, -1000, 500)),
		V: x0.V.Add(linalg.NewVector3(1, -1, 0.5)),
	}

	opts := DefaultOptions()
	opts.MaxIter = 15
	saver := &SliceSaver{}
	opts.Saver = saver

	result, err := Solve(model, a, perturbed, 0, epoch, iv, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if d := result.State.R.Sub(x0.R).Norm(); d > 100 {
		t.Errorf("recovered position off by %v m, want <100", d)
	}
	if d := result.State.V.Sub(x0.V).Norm(); d > 0.1 {
		t.Errorf("recovered velocity off by %v m/s, want <0.1", d)
	}
	if len(saver.Records) == 0 {
		t.Error("expected at least one accepted iteration to be logged")
	}
}

func TestSolveRejectsTooFewMeasurements(t *testing.T) {
	model := twoBodyModel()
	epoch := instant("2024-01-01T00:00:00Z")
	x0 := timeframe.State6{R: linalg.NewVector3(7000e3, 0, 0), V: linalg.NewVector3(0, 7546, 0)}
	times := []timeframe.Instant{epoch.Add(60 * time.Second), epoch.Add(120 * time.Second)}
	iv := syntheticInterval(t, model, x0, epoch, times, 10*time.Second)

	a := residual.NewAssembler(model, 10*time.Second)
	if _, err := Solve(model, a, x0, 0, epoch, iv, DefaultOptions()); err != ErrInsufficientPoints {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}
}

func TestSolveRejectsUnloadedModel(t *testing.T) {
	a := residual.NewAssembler(twoBodyModel(), 10*time.Second)
	if _, err := Solve(nil, a, timeframe.State6{}, 0, instant("2024-01-01T00:00:00Z"), measurement.NewMeasuringInterval(nil, instant("2024-01-01T00:00:00Z"), instant("2024-01-01T01:00:00Z")), DefaultOptions()); err != ErrNotLoaded {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestIsEqualConvergence(t *testing.T) {
	if !isEqual(100, 100, 1e-3) {
		t.Error("identical norms must satisfy isEqual")
	}
	if isEqual(100, 50, 1e-3) {
		t.Error("large relative change must not satisfy isEqual")
	}
	if !isEqual(0, 0, 1e-3) {
		t.Error("zero residuals must satisfy isEqual via the absolute floor")
	}
}
