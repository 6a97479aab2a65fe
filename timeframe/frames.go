package timeframe

import (
	"math"

	"github.com/anupshinde/astrofit/linalg"
)

// EarthRotationRate is the nominal Earth angular rotation rate (rad/s),
// used both as the GRW/ABS velocity-coupling term here and as the
// frame-rotation pseudo-force rate in the force model.
const EarthRotationRate = 7.2921150e-5

// State6 is a position+velocity pair in a single frame, used by the
// velocity-coupled ABS<->GRW transform.
type State6 struct {
	R linalg.Vector3
	V linalg.Vector3
}

// Flatten6 returns s as a flat [x,y,z,vx,vy,vz] vector, the representation
// the integrator and forecast packages operate on.
func (s State6) Flatten6() []float64 {
	return []float64{s.R.X, s.R.Y, s.R.Z, s.V.X, s.V.Y, s.V.Z}
}

// State6FromFlat rebuilds a State6 from a flat 6-vector produced by
// Flatten6.
func State6FromFlat(v []float64) State6 {
	return State6{
		R: linalg.NewVector3(v[0], v[1], v[2]),
		V: linalg.NewVector3(v[3], v[4], v[5]),
	}
}

func rotateZ(v linalg.Vector3, angle float64) linalg.Vector3 {
	s, c := math.Sincos(angle)
	return linalg.NewVector3(
		c*v.X-s*v.Y,
		s*v.X+c*v.Y,
		v.Z,
	)
}

// ABSORTToGRWORT transforms a position vector from the ABS (inertial)
// Cartesian frame to the GRW (Earth-fixed rotating) Cartesian frame at
// instant t: the "forward" direction of the (ABS-ORT, GRW-ORT) pair.
func ABSORTToGRWORT(v linalg.Vector3, t Instant) linalg.Vector3 {
	theta := SiderealTime(t)
	return rotateZ(v, -theta)
}

// GRWORTToABSORT is the backward direction: GRW Cartesian to ABS Cartesian.
func GRWORTToABSORT(v linalg.Vector3, t Instant) linalg.Vector3 {
	theta := SiderealTime(t)
	return rotateZ(v, theta)
}

// ABSORTToGRWORTState is the velocity-coupled 6-vector variant: it carries
// the frame's angular velocity term through to the velocity component.
//
// If r_ABS = Rz(theta) r_GRW then v_ABS = Rz(theta)(v_GRW + omega x r_GRW),
// so v_GRW = Rz(-theta) v_ABS - omega x r_GRW.
func ABSORTToGRWORTState(s State6, t Instant) State6 {
	theta := SiderealTime(t)
	rGRW := rotateZ(s.R, -theta)
	vABSRotated := rotateZ(s.V, -theta)
	omega := linalg.NewVector3(0, 0, EarthRotationRate)
	vGRW := vABSRotated.Sub(omega.Cross(rGRW))
	return State6{R: rGRW, V: vGRW}
}

// GRWORTToABSORTState is the backward velocity-coupled transform.
func GRWORTToABSORTState(s State6, t Instant) State6 {
	theta := SiderealTime(t)
	omega := linalg.NewVector3(0, 0, EarthRotationRate)
	vGRWPlusOmega := s.V.Add(omega.Cross(s.R))
	return State6{
		R: rotateZ(s.R, theta),
		V: rotateZ(vGRWPlusOmega, theta),
	}
}

// Mean J2000 obliquity of the ecliptic (Lieske 1979), precomputed as a
// sine/cosine pair.
const (
	obliquitySin = 0.3977771559319137062
	obliquityCos = 0.9174820620691818140
)

// ABSToEcliptic rotates an ABS (equatorial, J2000) Cartesian vector into
// the mean ecliptic frame.
func ABSToEcliptic(v linalg.Vector3) linalg.Vector3 {
	return linalg.NewVector3(
		v.X,
		obliquityCos*v.Y+obliquitySin*v.Z,
		-obliquitySin*v.Y+obliquityCos*v.Z,
	)
}

// EclipticToABS is the inverse rotation, ecliptic to ABS equatorial.
func EclipticToABS(v linalg.Vector3) linalg.Vector3 {
	return linalg.NewVector3(
		v.X,
		obliquityCos*v.Y-obliquitySin*v.Z,
		obliquitySin*v.Y+obliquityCos*v.Z,
	)
}
