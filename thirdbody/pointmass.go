// Package thirdbody implements the third-body point-mass perturbation and
// the analytic Sun/Moon position series.
package thirdbody

import "github.com/anupshinde/astrofit/linalg"

// Gravity returns the point-mass perturbing acceleration on a satellite at
// position p from a body of gravitational parameter mu at position m, both
// expressed in the same Cartesian frame:
//
//	a = mu * ((m-p)/|m-p|^3 - m/|m|^3)
//
// the second term removes the acceleration of the central body itself so
// that a can be added directly to a geocentric motion model.
func Gravity(p, m linalg.Vector3, mu float64) linalg.Vector3 {
	d := m.Sub(p)
	dn := d.Norm()
	mn := m.Norm()
	return d.Scale(mu / (dn * dn * dn)).Sub(m.Scale(mu / (mn * mn * mn)))
}

// GravityJacobian returns both the perturbing acceleration and its 3x3
// sensitivity da/dp, used by the variational motion model.
func GravityJacobian(p, m linalg.Vector3, mu float64) (linalg.Vector3, linalg.Matrix3) {
	a := Gravity(p, m, mu)

	d := m.Sub(p)
	dn := d.Norm()
	d3 := dn * dn * dn
	d5 := d3 * dn * dn

	var j linalg.Matrix3
	identity := linalg.Identity3()
	outer := linalg.Outer3(d, d)
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			j.M[i][k] = mu * (-identity.M[i][k]/d3 + 3*outer.M[i][k]/d5)
		}
	}
	return a, j
}
