// Package harmonics implements the geopotential: an
// immutable, process-wide harmonic coefficient table and an evaluator that
// produces Earth's gravitational potential, its gradient, or its gradient
// and Hessian, by the standard normalized associated-Legendre recurrence.
package harmonics

import "fmt"

// Table is the read-only harmonic coefficient set consumed by the core.
// It is loaded once, before any solver work starts, and never mutated
// afterward; every MotionModel built on top of it shares
// the same Table by reference.
type Table struct {
	// NMax is the maximum degree present in Cnm/Snm.
	NMax int
	// Cnm, Snm are indexed cnm[n][m], snm[n][m] for 0 <= m <= n <= NMax.
	Cnm [][]float64
	Snm [][]float64

	Mu         float64 // gravitational parameter, m^3/s^2
	Radius     float64 // equatorial radius, m
	Omega      float64 // Earth angular rotation rate, rad/s
	Flattening float64
}

// NewTable allocates a Table for the given maximum degree with all
// coefficients zeroed (C_00 implicitly 1 is handled by the evaluator, not
// stored).
func NewTable(nmax int, mu, radius, omega, flattening float64) *Table {
	cnm := make([][]float64, nmax+1)
	snm := make([][]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		cnm[n] = make([]float64, n+1)
		snm[n] = make([]float64, n+1)
	}
	return &Table{
		NMax: nmax, Cnm: cnm, Snm: snm,
		Mu: mu, Radius: radius, Omega: omega, Flattening: flattening,
	}
}

// Set stores C_nm and S_nm for degree n, order m (0 <= m <= n <= NMax).
func (t *Table) Set(n, m int, c, s float64) error {
	if n < 0 || n > t.NMax || m < 0 || m > n {
		return fmt.Errorf("harmonics: Set: degree/order (%d,%d) out of range [0,%d]", n, m, t.NMax)
	}
	t.Cnm[n][m] = c
	t.Snm[n][m] = s
	return nil
}

// Get returns C_nm and S_nm for degree n, order m.
func (t *Table) Get(n, m int) (c, s float64) {
	if n < 0 || n > t.NMax || m < 0 || m > n {
		return 0, 0
	}
	return t.Cnm[n][m], t.Snm[n][m]
}
