package harmonics

import (
	"fmt"
	"math"

	"github.com/anupshinde/astrofit/linalg"
)

// Geopotential evaluates Earth's gravitational potential from a Table,
// truncated to Degree (<= Table.NMax), in the GRW (Earth-fixed) Cartesian
// frame.
type Geopotential struct {
	Table  *Table
	Degree int
}

// NewGeopotential builds an evaluator truncated to degree, which must not
// exceed table.NMax.
func NewGeopotential(table *Table, degree int) (*Geopotential, error) {
	if degree < 0 || degree > table.NMax {
		return nil, fmt.Errorf("harmonics: degree %d exceeds table max degree %d", degree, table.NMax)
	}
	return &Geopotential{Table: table, Degree: degree}, nil
}

// sphericalPartials holds dU/dr, dU/dphi, dU/dlambda.
type sphericalPartials struct {
	dUdr, dUdphi, dUdlambda float64
}

// Potential returns the potential value U at Cartesian position pos (metres).
func (g *Geopotential) Potential(pos linalg.Vector3) float64 {
	r, phi, lambda := cartesianToSpherical(pos)
	if g.Degree == 0 {
		return g.Table.Mu / r
	}
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	leg := newLegendreSet(g.Degree, sinPhi, cosPhi)

	mu, R := g.Table.Mu, g.Table.Radius
	var u float64
	for n := 0; n <= g.Degree; n++ {
		rn := math.Pow(R/r, float64(n))
		for m := 0; m <= n; m++ {
			c, s := g.Table.Get(n, m)
			if c == 0 && s == 0 && !(n == 0 && m == 0) {
				continue
			}
			sinML, cosML := math.Sincos(float64(m) * lambda)
			term := c*cosML + s*sinML
			if n == 0 && m == 0 {
				term = 1 // unit C00
			}
			u += rn * leg.P(n, m) * term
		}
	}
	return mu / r * u
}

// partials computes (U, dU/dr, dU/dphi, dU/dlambda) at pos.
func (g *Geopotential) partials(pos linalg.Vector3) (float64, sphericalPartials, float64, float64, float64) {
	r, phi, lambda := cartesianToSpherical(pos)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	leg := newLegendreSet(max(g.Degree, 0), sinPhi, cosPhi)

	mu, R := g.Table.Mu, g.Table.Radius
	var u, dUdr, dUdphi, dUdlambda float64
	for n := 0; n <= g.Degree; n++ {
		rn := math.Pow(R/r, float64(n))
		rnPlus1 := rn / (r * r) // R^n / r^{n+2}, the dU/dr radial scaling
		for m := 0; m <= n; m++ {
			c, s := g.Table.Get(n, m)
			isUnit := n == 0 && m == 0
			if c == 0 && s == 0 && !isUnit {
				continue
			}
			sinML, cosML := math.Sincos(float64(m) * lambda)
			term := c*cosML + s*sinML
			dterm := float64(m) * (-c*sinML + s*cosML)
			if isUnit {
				term, dterm = 1, 0
			}
			p := leg.P(n, m)
			dp := leg.DP(n, m)

			u += rn * p * term
			dUdr += -float64(n+1) * rnPlus1 * p * term
			dUdphi += rn * dp * term
			dUdlambda += rn * p * dterm
		}
	}
	u *= mu / r
	dUdr *= mu
	dUdphi *= mu / r
	dUdlambda *= mu / r

	return u, sphericalPartials{dUdr, dUdphi, dUdlambda}, r, phi, lambda
}

// Gradient returns the potential and its Cartesian gradient dU/dx at pos.
func (g *Geopotential) Gradient(pos linalg.Vector3) (float64, linalg.Vector3) {
	u, sp, r, phi, lambda := g.partials(pos)
	j := sphericalJacobian(pos, r, phi, lambda)
	grad := j.Transpose().MulVec(linalg.NewVector3(sp.dUdr, sp.dUdphi, sp.dUdlambda))
	return u, grad
}

// GradientHessian returns the potential, its Cartesian gradient, and the
// Cartesian Hessian d^2U/dx dy at pos. The Hessian is obtained by central
// finite differences of Gradient rather than a closed-form second-derivative
// Legendre recurrence: the motion model only needs the Hessian for the
// variational state-transition matrix, where finite-difference accuracy
// at the metre/second state scale is indistinguishable from the closed
// form within the integrator's own step error.
func (g *Geopotential) GradientHessian(pos linalg.Vector3) (float64, linalg.Vector3, linalg.Matrix3) {
	u, grad := g.Gradient(pos)

	const h = 1.0 // metres
	var hess linalg.Matrix3
	axes := [3]linalg.Vector3{{X: h}, {Y: h}, {Z: h}}
	for j, d := range axes {
		_, gPlus := g.Gradient(pos.Add(d))
		_, gMinus := g.Gradient(pos.Sub(d))
		col := gPlus.Sub(gMinus).Scale(1 / (2 * h))
		hess.M[0][j] = col.X
		hess.M[1][j] = col.Y
		hess.M[2][j] = col.Z
	}
	// Symmetrize to remove finite-difference asymmetry noise.
	hess = hess.Add(hess.Transpose()).Scale(0.5)
	return u, grad, hess
}

func cartesianToSpherical(v linalg.Vector3) (r, phi, lambda float64) {
	r = v.Norm()
	phi = math.Asin(clampUnit(v.Z / r))
	lambda = math.Atan2(v.Y, v.X)
	return
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// sphericalJacobian returns J where J[i][j] = d(r,phi,lambda)_i / d(x,y,z)_j.
func sphericalJacobian(v linalg.Vector3, r, phi, lambda float64) linalg.Matrix3 {
	rho := math.Hypot(v.X, v.Y)
	if rho < 1e-9 {
		rho = 1e-9
	}
	var j linalg.Matrix3
	j.M[0][0], j.M[0][1], j.M[0][2] = v.X/r, v.Y/r, v.Z/r
	j.M[1][0] = -v.X * v.Z / (r * r * rho)
	j.M[1][1] = -v.Y * v.Z / (r * r * rho)
	j.M[1][2] = rho / (r * r)
	j.M[2][0] = -v.Y / (rho * rho)
	j.M[2][1] = v.X / (rho * rho)
	j.M[2][2] = 0
	return j
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
