package astrofit

import (
	"math"
	"testing"
	"time"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/atmosphere"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/harmonics"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/measurement"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/solver"
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
	weather := atmosphere.StaticProvider(atmosphere.SpaceWeather{})
	m := motion.NewModel(geo, table, 0, weather, false)
	m.HMin, m.HMax = -1e9, 1e9
	return m
}

func syntheticInterval(t *testing.T, model *motion.Model, x0 timeframe.State6, epoch timeframe.Instant, step time.Duration, n int) (*measurement.MeasuringInterval, timeframe.Instant) {
	t.Helper()
	times := make([]timeframe.Instant, n)
	for i := range times {
		times[i] = epoch.Add(time.Duration(i+1) * step)
	}
	last := times[n-1]

	deriv := func(y []float64, tt timeframe.Instant) ([]float64, error) {
		state := timeframe.State6FromFlat(y)
		d, err := model.Plain(state, 0, tt)
		if err != nil {
			return nil, err
		}
		return d.Flatten6(), nil
	}
	fc, err := forecast.Run(x0.Flatten6(), epoch, last, 10*time.Second, deriv)
	if err != nil {
		t.Fatalf("building synthetic forecast: %v", err)
	}

	obs := linalg.Vector3{}
	var meas []measurement.M
	for _, ti := range times {
		y, err := fc.Point(ti, 4)
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
	iv := measurement.NewMeasuringInterval([]*measurement.Seance{seance}, times[0], last)
	return iv, last
}

func TestResidualsZeroForSelfConsistentState(t *testing.T) {
	model := twoBodyModel()
	epoch := instant("2024-01-01T00:00:00Z")
	x0 := timeframe.State6{R: linalg.NewVector3(7000e3, 0, 0), V: linalg.NewVector3(0, 7546, 0)}
	iv, _ := syntheticInterval(t, model, x0, epoch, 60*time.Second, 4)

	candidate := astrostate.NewOrbitInitial6(epoch, x0)
	r, err := Residuals(model, candidate, iv, 10*time.Second)
	if err != nil {
		t.Fatalf("Residuals: %v", err)
	}
	for i := 0; i < r.Len(); i++ {
		if math.Abs(r.At(i)) > 1e-6 {
			t.Errorf("residual[%d] = %v, want ~0", i, r.At(i))
		}
	}
}

func TestForecastReachesRequestedHorizon(t *testing.T) {
	model := twoBodyModel()
	epoch := instant("2024-01-01T00:00:00Z")
	x0 := timeframe.State6{R: linalg.NewVector3(7000e3, 0, 0), V: linalg.NewVector3(0, 7546, 0)}
	initial := astrostate.NewOrbitInitial6(epoch, x0)

	fc, err := Forecast(model, initial, 5*time.Minute, 10*time.Second)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	want := epoch.Add(5 * time.Minute)
	if !fc.End().Equal(want) {
		t.Errorf("End = %v, want %v", fc.End(), want)
	}
}

func TestSolveRecoversPerturbedState(t *testing.T) {
	model := twoBodyModel()
	epoch := instant("2024-01-01T00:00:00Z")
	truth := timeframe.State6{R: linalg.NewVector3(7000e3, 0, 0), V: linalg.NewVector3(0, 7546, 0)}
	iv, _ := syntheticInterval(t, model, truth, epoch, 60*time.Second, 8)

	perturbed := timeframe.State6{
		R: linalg.NewVector3(truth.R.X+500, truth.R.Y, truth.R.Z),
		V: truth.V,
	}
	initial := astrostate.NewOrbitInitial6(epoch, perturbed)

	opts := solver.DefaultOptions()
	result, err := Solve(model, initial, iv, 10*time.Second, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Residual > 1e-3 {
		t.Errorf("residual = %v after solve, want convergence near zero", result.Residual)
	}
}
