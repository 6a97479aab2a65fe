package linalg

import "math"

// Quaternion is a scalar-vector unit quaternion W + Xi + Yj + Zk, used to
// represent the attitude of a drag-reference surface mesh (see the drag
// package's multi-face ballistic coefficient) and the rotation package's
// spin-axis model.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion { return Quaternion{W: 1} }

// FromAxisAngle builds the quaternion representing a right-handed rotation
// of angle radians about axis (which need not be normalized).
func FromAxisAngle(axis Vector3, angle float64) Quaternion {
	u := axis.Unit()
	s, c := math.Sincos(angle / 2)
	return Quaternion{W: c, X: u.X * s, Y: u.Y * s, Z: u.Z * s}
}

// FromVectors builds the quaternion representing the shortest rotation that
// takes unit vector from onto unit vector to.
func FromVectors(from, to Vector3) Quaternion {
	f, t := from.Unit(), to.Unit()
	d := f.Dot(t)
	if d < -1+1e-12 {
		// Antiparallel: pick any axis orthogonal to f.
		axis := Vector3{1, 0, 0}.Cross(f)
		if axis.Norm() < 1e-9 {
			axis = Vector3{0, 1, 0}.Cross(f)
		}
		return FromAxisAngle(axis, math.Pi)
	}
	axis := f.Cross(t)
	w := 1 + d
	q := Quaternion{W: w, X: axis.X, Y: axis.Y, Z: axis.Z}
	return q.Normalize()
}

// Normalize returns q scaled to unit norm.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Mul composes rotations: (q.Mul(r)) applied to a vector equals q applied
// after r, i.e. Rotate(v, q.Mul(r)) == Rotate(Rotate(v, r), q).
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conj returns the conjugate of q.
func (q Quaternion) Conj() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// Inverse returns the multiplicative inverse of q (equal to Conj for a unit
// quaternion).
func (q Quaternion) Inverse() Quaternion {
	n2 := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	c := q.Conj()
	return Quaternion{c.W / n2, c.X / n2, c.Y / n2, c.Z / n2}
}

// Rotate applies q to vector v: v' = q * v * q^-1.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := Quaternion{0, v.X, v.Y, v.Z}
	r := q.Mul(p).Mul(q.Conj())
	return Vector3{r.X, r.Y, r.Z}
}
