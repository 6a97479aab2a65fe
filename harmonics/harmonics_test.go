package harmonics

import (
	"math"
	"testing"

	"github.com/anupshinde/astrofit/linalg"
)

const (
	earthMu  = 3.986004418e14
	earthR   = 6378137.0
	earthOm  = 7.2921150e-5
	earthFla = 1.0 / 298.257223563
)

func pointMassTable() *Table {
	return NewTable(0, earthMu, earthR, earthOm, earthFla)
}

func j2Table() *Table {
	t := NewTable(2, earthMu, earthR, earthOm, earthFla)
	// Unnormalized J2 = 1.08263e-3 converted to fully normalized C20 = -J2/sqrt(5).
	j2 := 1.08263e-3
	c20 := -j2 / math.Sqrt(5)
	if err := t.Set(2, 0, c20, 0); err != nil {
		panic(err)
	}
	return t
}

func TestPotentialPointMassMatchesKeplerian(t *testing.T) {
	table := pointMassTable()
	g, err := NewGeopotential(table, 0)
	if err != nil {
		t.Fatalf("NewGeopotential: %v", err)
	}
	pos := linalg.NewVector3(7000e3, 0, 0)
	got := g.Potential(pos)
	want := earthMu / pos.Norm()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("Potential = %v, want %v", got, want)
	}
}

func TestGradientPointMassPointsInward(t *testing.T) {
	table := pointMassTable()
	g, _ := NewGeopotential(table, 0)
	pos := linalg.NewVector3(7000e3, 1000e3, 0)
	_, grad := g.Gradient(pos)

	// For U = mu/r, dU/dr_vec = -mu/r^3 * r_vec: gradient must be anti-parallel to pos.
	r := pos.Norm()
	want := pos.Scale(-earthMu / (r * r * r))
	if diff := grad.Sub(want).Norm(); diff > 1e-2 {
		t.Errorf("gradient = %v, want %v (diff %v)", grad, want, diff)
	}
}

func TestGradientMatchesFiniteDifferenceOfPotential(t *testing.T) {
	table := j2Table()
	g, err := NewGeopotential(table, 2)
	if err != nil {
		t.Fatalf("NewGeopotential: %v", err)
	}
	pos := linalg.NewVector3(7000e3, 1200e3, 500e3)

	_, grad := g.Gradient(pos)

	const h = 1.0
	fd := func(axis linalg.Vector3) float64 {
		return (g.Potential(pos.Add(axis)) - g.Potential(pos.Sub(axis))) / (2 * h)
	}
	want := linalg.NewVector3(
		fd(linalg.NewVector3(h, 0, 0)),
		fd(linalg.NewVector3(0, h, 0)),
		fd(linalg.NewVector3(0, 0, h)),
	)
	if diff := grad.Sub(want).Norm(); diff > 1e-4 {
		t.Errorf("analytic gradient %v diverges from finite-difference %v (diff %v)", grad, want, diff)
	}
}

func TestGradientHessianIsSymmetric(t *testing.T) {
	table := j2Table()
	g, _ := NewGeopotential(table, 2)
	pos := linalg.NewVector3(6900e3, -800e3, 1200e3)

	_, _, hess := g.GradientHessian(pos)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(hess.M[i][j]-hess.M[j][i]) > 1e-9 {
				t.Errorf("Hessian not symmetric at (%d,%d): %v vs %v", i, j, hess.M[i][j], hess.M[j][i])
			}
		}
	}
}

func TestNewGeopotentialRejectsDegreeAboveTableMax(t *testing.T) {
	table := pointMassTable()
	if _, err := NewGeopotential(table, 5); err == nil {
		t.Fatal("expected error for degree exceeding table NMax")
	}
}

func TestTableSetGetRoundTrip(t *testing.T) {
	table := NewTable(3, earthMu, earthR, earthOm, earthFla)
	if err := table.Set(3, 2, 0.5, -0.25); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c, s := table.Get(3, 2)
	if c != 0.5 || s != -0.25 {
		t.Errorf("Get(3,2) = (%v,%v), want (0.5,-0.25)", c, s)
	}
	if err := table.Set(4, 0, 1, 1); err == nil {
		t.Error("expected error for out-of-range Set")
	}
}
