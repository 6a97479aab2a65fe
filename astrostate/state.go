// Package astrostate defines the state vector types shared by the motion
// model, integrator, forecast, and solver: the plain
// 6-vector state, its SRP-extended 7-vector form, the variational extended
// state, and the a-priori orbit sample consumed from a TLE or a prior
// solution.
package astrostate

import "github.com/anupshinde/astrofit/timeframe"

// State6 is a position+velocity pair in the GRW (Earth-fixed) Cartesian
// frame, SI units. It is the same type the time/frame transforms use so a
// solver state can be rotated between frames without copying fields.
type State6 = timeframe.State6

// State7 is State6 extended with an effective area-times-reflectivity
// coefficient (m^2/kg) absorbing unmodelled solar radiation pressure. It
// never doubles as the drag ballistic coefficient, which the motion model
// instead takes as a separate constructor parameter.
type State7 struct {
	State6
	S float64
}
