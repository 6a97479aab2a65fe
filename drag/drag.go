// Package drag implements the atmospheric drag acceleration model, both
// the single ballistic-coefficient form and the multi-face
// attitude-dependent form.
package drag

import "github.com/anupshinde/astrofit/linalg"

// Acceleration returns the drag acceleration on a body with ballistic
// coefficient s (units consistent with rho and vRel, typically m^2/kg)
// moving at velocity vRel relative to the rotating atmosphere, in air of
// density rho:
//
//	a = -|vRel| * rho * s * vRel
func Acceleration(vRel linalg.Vector3, rho, s float64) linalg.Vector3 {
	return vRel.Scale(-vRel.Norm() * rho * s)
}

// AccelerationJacobian additionally returns da/dvRel, the 3x3 sensitivity
// used by the variational motion model.
func AccelerationJacobian(vRel linalg.Vector3, rho, s float64) (linalg.Vector3, linalg.Matrix3) {
	a := Acceleration(vRel, rho, s)

	n := vRel.Norm()
	var j linalg.Matrix3
	identity := linalg.Identity3()
	if n == 0 {
		return a, j
	}
	outer := linalg.Outer3(vRel, vRel)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			j.M[i][k] = -rho * s * (n*identity.M[i][k] + outer.M[i][k]/n)
		}
	}
	return a, j
}

// Face is one element of a multi-face ballistic-coefficient surface mesh:
// a flat panel of the given area and outward unit normal (in the body
// frame, before any attitude rotation is applied).
type Face struct {
	Area   float64
	Normal linalg.Vector3
}

// BallisticCoefficient sums, over the mesh, each face's projected area
// facing the relative-velocity direction: s = sum(face.Area * max(0,
// n.v_hat)), optionally rotating every face normal by an attitude
// quaternion before projecting.
func BallisticCoefficient(faces []Face, vRel linalg.Vector3, attitude *linalg.Quaternion) float64 {
	n := vRel.Norm()
	if n == 0 {
		return 0
	}
	vHat := vRel.Scale(1 / n)

	var s float64
	for _, f := range faces {
		normal := f.Normal
		if attitude != nil {
			normal = attitude.Rotate(normal)
		}
		proj := normal.Dot(vHat)
		if proj > 0 {
			s += f.Area * proj
		}
	}
	return s
}
