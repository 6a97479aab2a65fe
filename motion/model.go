// Package motion composes the force components into the right-hand
// side of the equations of motion: a plain form
// producing the state derivative, and a variational form that additionally
// propagates the state-transition matrix.
package motion

import (
	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/atmosphere"
	"github.com/anupshinde/astrofit/drag"
	"github.com/anupshinde/astrofit/harmonics"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/srp"
	"github.com/anupshinde/astrofit/thirdbody"
	"github.com/anupshinde/astrofit/timeframe"
)

// Default altitude domain bounds, metres.
const (
	DefaultHMin = 150e3
	DefaultHMax = 2500e3
)

// Model composes one harmonic table and one ballistic coefficient into
// both the plain and variational right-hand sides.
type Model struct {
	Geopotential *harmonics.Geopotential
	Table        *harmonics.Table
	Ballistic    float64 // drag coefficient, m^2/kg; never the SRP coefficient
	Weather      atmosphere.Provider
	EnableSRP    bool
	HMin, HMax   float64
}

// NewModel builds a Model with the default altitude bounds.
func NewModel(geo *harmonics.Geopotential, table *harmonics.Table, ballistic float64, weather atmosphere.Provider, enableSRP bool) *Model {
	return &Model{
		Geopotential: geo, Table: table, Ballistic: ballistic,
		Weather: weather, EnableSRP: enableSRP,
		HMin: DefaultHMin, HMax: DefaultHMax,
	}
}

// altitude approximates height above the WGS ellipsoid using the
// flattening correction R(phi) = R*(1 - f*sin^2(phi)), adequate at this
// model's own tens-of-metres accuracy target.
func (m *Model) altitude(pos linalg.Vector3) float64 {
	r := pos.Norm()
	if r == 0 {
		return -m.Table.Radius
	}
	sinLat := pos.Z / r
	rEllipsoid := m.Table.Radius * (1 - m.Table.Flattening*sinLat*sinLat)
	return r - rEllipsoid
}

func (m *Model) checkAltitude(pos linalg.Vector3, t timeframe.Instant) error {
	h := m.altitude(pos)
	if h < m.HMin || h > m.HMax {
		return &HeightOutOfBoundsError{HeightM: h, T: t, HMin: m.HMin, HMax: m.HMax}
	}
	return nil
}

// Accel evaluates the total GRW-frame acceleration on a point mass at pos,
// moving at velocity v, at instant t, with SRP coefficient s (ignored
// unless m.EnableSRP).
func (m *Model) Accel(pos, v linalg.Vector3, s float64, t timeframe.Instant) (linalg.Vector3, error) {
	if err := m.checkAltitude(pos, t); err != nil {
		return linalg.Vector3{}, err
	}

	_, aGeo := m.Geopotential.Gradient(pos)

	sunGRW := timeframe.ABSORTToGRWORT(thirdbody.SunPosition(t), t)
	moonGRW := timeframe.ABSORTToGRWORT(thirdbody.MoonPosition(t), t)
	aSun := thirdbody.Gravity(pos, sunGRW, thirdbody.SunMu)
	aMoon := thirdbody.Gravity(pos, moonGRW, thirdbody.MoonMu)

	h := m.altitude(pos)
	omega := linalg.NewVector3(0, 0, m.Table.Omega)
	vRel := v.Sub(omega.Cross(pos))
	rho := m.density(pos, h, sunGRW, t)
	aDrag := drag.Acceleration(vRel, rho, m.Ballistic)

	a := aGeo.Add(aSun).Add(aMoon).Add(aDrag).Add(rotationPseudoForce(pos, v, m.Table.Omega))

	if m.EnableSRP {
		ecl := srp.EclipseCoefficient(pos, sunGRW)
		a = a.Add(srp.Acceleration(pos, sunGRW, s, ecl))
	}

	return a, nil
}

// rotationPseudoForce returns the centrifugal + Coriolis terms for the
// rotating GRW frame.
func rotationPseudoForce(pos, v linalg.Vector3, omega float64) linalg.Vector3 {
	return linalg.NewVector3(
		omega*omega*pos.X+2*omega*v.Y,
		omega*omega*pos.Y-2*omega*v.X,
		0,
	)
}

func dayOfYear(t timeframe.Instant) int {
	return t.Time().YearDay()
}

// density evaluates the atmospheric density at pos, feeding the dynamic
// model the solar sub-point derived from the Sun's GRW position, which
// drives the diurnal-bulge correction.
func (m *Model) density(pos linalg.Vector3, h float64, sunGRW linalg.Vector3, t timeframe.Instant) float64 {
	sunSph := timeframe.CartesianToGRWSpherical(sunGRW)
	return atmosphere.Density(pos, h/1000, dayOfYear(t), sunSph.Longitude, sunSph.Latitude, m.Weather(t))
}

// Plain evaluates f(state6, t) -> derivative6.
func (m *Model) Plain(state astrostate.State6, s float64, t timeframe.Instant) (astrostate.State6, error) {
	a, err := m.Accel(state.R, state.V, s, t)
	if err != nil {
		return astrostate.State6{}, err
	}
	return astrostate.State6{R: state.V, V: a}, nil
}

// sensitivities bundles the 3x3 acceleration sensitivity terms the
// variational model needs at a single evaluation point: da/dr from the
// geopotential Hessian and the third bodies, and da/dv from drag.
func (m *Model) sensitivities(pos, v linalg.Vector3, t timeframe.Instant) (linalg.Matrix3, linalg.Matrix3, error) {
	if err := m.checkAltitude(pos, t); err != nil {
		return linalg.Matrix3{}, linalg.Matrix3{}, err
	}
	_, _, hess := m.Geopotential.GradientHessian(pos)

	sunGRW := timeframe.ABSORTToGRWORT(thirdbody.SunPosition(t), t)
	moonGRW := timeframe.ABSORTToGRWORT(thirdbody.MoonPosition(t), t)
	_, jSun := thirdbody.GravityJacobian(pos, sunGRW, thirdbody.SunMu)
	_, jMoon := thirdbody.GravityJacobian(pos, moonGRW, thirdbody.MoonMu)

	omega := linalg.NewVector3(0, 0, m.Table.Omega)
	vRel := v.Sub(omega.Cross(pos))
	h := m.altitude(pos)
	rho := m.density(pos, h, sunGRW, t)
	_, jDrag := drag.AccelerationJacobian(vRel, rho, m.Ballistic)

	return hess.Add(jSun).Add(jMoon), jDrag, nil
}

// Variational evaluates f(stateExt, t) -> derivativeExt: the first 6
// components are the plain derivative, and the remaining Rows*K columns
// propagate d(xdot)/dx * Phi(t).
func (m *Model) Variational(state astrostate.ExtendedState, s float64, t timeframe.Instant) (astrostate.ExtendedState, error) {
	plain, err := m.Plain(state.X6, s, t)
	if err != nil {
		return astrostate.ExtendedState{}, err
	}

	dadx, dadvDrag, err := m.sensitivities(state.X6.R, state.X6.V, t)
	if err != nil {
		return astrostate.ExtendedState{}, err
	}
	omega := m.Table.Omega
	// Frame-rotation pseudo-force sensitivity: d(a_rot)/d(x,y) = omega^2 on
	// the diagonal, d(a_rot)/d(vx,vy) = +-2*omega off-diagonal.
	var dadxRot, dadv linalg.Matrix3
	dadxRot.M[0][0], dadxRot.M[1][1] = omega*omega, omega*omega
	dadv.M[0][1], dadv.M[1][0] = 2*omega, -2*omega
	dadv = dadv.Add(dadvDrag)

	var dadS linalg.Vector3
	if state.Rows == 7 && m.EnableSRP {
		sunGRW := timeframe.ABSORTToGRWORT(thirdbody.SunPosition(t), t)
		ecl := srp.EclipseCoefficient(state.X6.R, sunGRW)
		dadS = srp.Acceleration(state.X6.R, sunGRW, 1.0, ecl) // d(a)/ds, s itself being a unit coefficient
	}

	dot := astrostate.NewExtendedState(plain, state.Rows, state.K)
	for k := 0; k < state.K; k++ {
		col := func(row int) float64 { return state.At(row, k) }
		drdt := linalg.NewVector3(col(3), col(4), col(5))
		dvdt := dadx.MulVec(linalg.NewVector3(col(0), col(1), col(2))).
			Add(dadxRot.MulVec(linalg.NewVector3(col(0), col(1), col(2)))).
			Add(dadv.MulVec(linalg.NewVector3(col(3), col(4), col(5))))

		if state.Rows == 7 {
			dvdt = dvdt.Add(dadS.Scale(col(6)))
			dot.Set(6, k, 0) // s is constant: d(Phi_s-row)/dt = 0
		}

		dot.Set(0, k, drdt.X)
		dot.Set(1, k, drdt.Y)
		dot.Set(2, k, drdt.Z)
		dot.Set(3, k, dvdt.X)
		dot.Set(4, k, dvdt.Y)
		dot.Set(5, k, dvdt.Z)
	}
	return dot, nil
}
