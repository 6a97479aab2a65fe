package motion

import (
	"math"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/timeframe"
)

// TwoBody is a closed-form two-body (Keplerian) propagator centered on
// Earth's gravitational parameter, used only as a cheap a-priori sanity
// check for a TLE-derived state (see the tleinit package), never by the
// solver's own motion model, which always goes through the full Model.
// It is driven directly by a Cartesian state rather than catalog
// elements.
type TwoBody struct {
	mu float64
	t0 timeframe.Instant

	a, e, i, raan, argp, m0, n float64
	rot                        linalg.Matrix3
}

// NewTwoBody derives classical orbital elements from a Cartesian state
// (r0, v0) at epoch t0 and returns a propagator for it.
func NewTwoBody(mu float64, t0 timeframe.Instant, r0, v0 linalg.Vector3) *TwoBody {
	h := r0.Cross(v0)
	z := linalg.NewVector3(0, 0, 1)
	nVec := z.Cross(h)

	r0n := r0.Norm()
	eVec := v0.Cross(h).Scale(1 / mu).Sub(r0.Scale(1 / r0n))
	e := eVec.Norm()

	energy := v0.Dot(v0)/2 - mu/r0n
	a := -mu / (2 * energy)

	i := math.Acos(clamp(h.Z/h.Norm(), -1, 1))

	var raan float64
	if nVec.Norm() > 1e-12 {
		raan = math.Acos(clamp(nVec.X/nVec.Norm(), -1, 1))
		if nVec.Y < 0 {
			raan = 2*math.Pi - raan
		}
	}

	var argp float64
	if nVec.Norm() > 1e-12 && e > 1e-12 {
		argp = math.Acos(clamp(nVec.Dot(eVec)/(nVec.Norm()*e), -1, 1))
		if eVec.Z < 0 {
			argp = 2*math.Pi - argp
		}
	}

	var nu0 float64
	if e > 1e-12 {
		nu0 = math.Acos(clamp(eVec.Dot(r0)/(e*r0n), -1, 1))
		if r0.Dot(v0) < 0 {
			nu0 = 2*math.Pi - nu0
		}
	}

	E0 := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(nu0/2), math.Sqrt(1+e)*math.Cos(nu0/2))
	m0 := E0 - e*math.Sin(E0)
	n := math.Sqrt(mu / (a * a * a))

	return &TwoBody{
		mu: mu, t0: t0,
		a: a, e: e, i: i, raan: raan, argp: argp, m0: m0, n: n,
		rot: perifocalRotation(i, raan, argp),
	}
}

// perifocalRotation returns R = Rz(-raan) * Rx(-i) * Rz(-argp), whose
// columns are the perifocal frame's P, Q, W unit vectors expressed in the
// propagator's own (GRW) frame.
func perifocalRotation(i, raan, argp float64) linalg.Matrix3 {
	sinI, cosI := math.Sincos(i)
	sinO, cosO := math.Sincos(raan)
	sinW, cosW := math.Sincos(argp)

	return linalg.Matrix3{M: [3][3]float64{
		{cosO*cosW - sinO*sinW*cosI, -cosO*sinW - sinO*cosW*cosI, sinO * sinI},
		{sinO*cosW + cosO*sinW*cosI, -sinO*sinW + cosO*cosW*cosI, -cosO * sinI},
		{sinW * sinI, cosW * sinI, cosI},
	}}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// State propagates to instant t by solving Kepler's equation for the
// eccentric anomaly via Newton-Raphson, then reconstructing the perifocal
// position/velocity and rotating into the propagator's frame.
func (tb *TwoBody) State(t timeframe.Instant) astrostate.State6 {
	dt := t.Sub(tb.t0).Seconds()
	M := tb.m0 + tb.n*dt
	M = math.Mod(M, 2*math.Pi)

	E := M
	for iter := 0; iter < 50; iter++ {
		sinE, cosE := math.Sincos(E)
		f := E - tb.e*sinE - M
		fp := 1 - tb.e*cosE
		dE := -f / fp
		E += dE
		if math.Abs(dE) < 1e-14 {
			break
		}
	}

	sinE, cosE := math.Sincos(E)
	r := tb.a * (1 - tb.e*cosE)
	rPQW := linalg.NewVector3(tb.a*(cosE-tb.e), tb.a*math.Sqrt(1-tb.e*tb.e)*sinE, 0)
	vPQW := linalg.NewVector3(
		-math.Sqrt(tb.mu*tb.a)/r*sinE,
		math.Sqrt(tb.mu*tb.a)/r*math.Sqrt(1-tb.e*tb.e)*cosE,
		0,
	)

	return astrostate.State6{
		R: tb.rot.MulVec(rPQW),
		V: tb.rot.MulVec(vPQW),
	}
}
