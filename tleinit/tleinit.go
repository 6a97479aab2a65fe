// Package tleinit adapts go-satellite's SGP4 propagation of an
// already-parsed TLE line pair into an astrostate.OrbitInitial a-priori
// sample. TLE *file* parsing stays out of scope; this package only ever
// turns two already-parsed lines into one state sample.
package tleinit

import (
	"time"

	gosatellite "github.com/joshuaferrara/go-satellite"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/timeframe"
)

const kmToM = 1000.0

// FromTLE propagates a parsed two-line element set to instant t using
// SGP4 (WGS84 gravity model), and returns
// the resulting state sample in the GRW (Earth-fixed) frame this core
// operates in.
//
// SGP4's native output frame (TEME) is treated as an adequate
// approximation of this core's inertial ABS frame for a-priori seeding
// purposes: the few-arcsecond frame-definition difference between TEME
// and a true J2000 mean-equator frame is well within the position
// uncertainty a TLE-derived a-priori state already carries, so no
// additional precession/nutation correction is applied.
func FromTLE(line1, line2 string, t time.Time) (astrostate.OrbitInitial, error) {
	sat := gosatellite.TLEToSat(line1, line2, gosatellite.GravityWGS84)

	posKm, velKmS := gosatellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	absState := timeframe.State6{
		R: linalg.NewVector3(posKm.X*kmToM, posKm.Y*kmToM, posKm.Z*kmToM),
		V: linalg.NewVector3(velKmS.X*kmToM, velKmS.Y*kmToM, velKmS.Z*kmToM),
	}

	instant := timeframe.NewInstant(t)
	grwState := timeframe.ABSORTToGRWORTState(absState, instant)

	return astrostate.NewOrbitInitial6(instant, grwState), nil
}

// SanityCheck propagates a TLE-derived a-priori state over horizon both
// with the full force model and with a pure two-body (Kepler-only)
// propagator, as a fast-path validity check before handing the state to
// the full solver; the Kepler-only
// path is never a substitute for the full force model in the solver
// itself. Returns the position
// discrepancy in metres between the two propagations after horizon.
func SanityCheck(model *motion.Model, initial astrostate.OrbitInitial, horizon time.Duration, step time.Duration) (float64, error) {
	x6 := initial.X6
	end := initial.T.Add(horizon)

	deriv := func(y []float64, t timeframe.Instant) ([]float64, error) {
		state := timeframe.State6FromFlat(y)
		d, err := model.Plain(state, 0, t)
		if err != nil {
			return nil, err
		}
		return d.Flatten6(), nil
	}
	fc, err := forecast.Run(x6.Flatten6(), initial.T, end, step, deriv)
	if err != nil {
		return 0, err
	}
	y, err := fc.Point(end, forecast.DefaultDegree)
	if err != nil {
		return 0, err
	}
	full := linalg.NewVector3(y[0], y[1], y[2])

	// The Kepler leg runs in the inertial frame: a two-body propagation fed
	// the rotating-frame state directly would miss the centrifugal and
	// Coriolis terms the full model carries.
	absInit := timeframe.GRWORTToABSORTState(timeframe.State6{R: x6.R, V: x6.V}, initial.T)
	tb := motion.NewTwoBody(model.Table.Mu, initial.T, absInit.R, absInit.V)
	keplerGRW := timeframe.ABSORTToGRWORTState(tb.State(end), end)

	return keplerGRW.R.Sub(full).Norm(), nil
}
