package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a dynamically sized dense matrix for the variational state
// (6*k or 7*k columns) and the least-squares normal equations. Backed by
// gonum.org/v1/gonum/mat.
type Matrix struct {
	d *mat.Dense
}

// NewMatrix allocates an r x c matrix, zero-initialized.
func NewMatrix(r, c int) Matrix {
	return Matrix{d: mat.NewDense(r, c, nil)}
}

// MatrixFromRows builds a Matrix from row-major data.
func MatrixFromRows(r, c int, data []float64) Matrix {
	return Matrix{d: mat.NewDense(r, c, data)}
}

// Dims returns (rows, cols).
func (m Matrix) Dims() (int, int) { return m.d.Dims() }

// At returns element (i,j).
func (m Matrix) At(i, j int) float64 { return m.d.At(i, j) }

// Set sets element (i,j).
func (m Matrix) Set(i, j int, v float64) { m.d.Set(i, j, v) }

// Raw returns the underlying gonum Dense for callers that need the full
// gonum API (e.g. the solver's normal-equation assembly).
func (m Matrix) Raw() *mat.Dense { return m.d }

// Vector is a dynamically sized column vector.
type Vector struct {
	d *mat.VecDense
}

// NewVector allocates a zero vector of length n.
func NewVector(n int) Vector { return Vector{d: mat.NewVecDense(n, nil)} }

// VectorFromSlice wraps data as a Vector (data is not copied).
func VectorFromSlice(data []float64) Vector { return Vector{d: mat.NewVecDense(len(data), data)} }

// Len returns the vector length.
func (v Vector) Len() int { return v.d.Len() }

// At returns element i.
func (v Vector) At(i int) float64 { return v.d.AtVec(i) }

// Set sets element i.
func (v Vector) Set(i int, x float64) { v.d.SetVec(i, x) }

// Raw returns the underlying gonum VecDense, for callers (the solver's
// damped normal-equation assembly) that need the full gonum API.
func (v Vector) Raw() *mat.VecDense { return v.d }

// Slice copies the vector contents into a []float64.
func (v Vector) Slice() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Norm returns the Euclidean norm of v, via the package's dispatched
// DotProduct primitive (AVX2 path when available) rather than gonum's
// generic mat.Norm.
func (v Vector) Norm() float64 {
	s := v.Slice()
	return math.Sqrt(DotProduct(s, s))
}

// Lstsq solves min ||A^T x - b||^2 for an n-vector x, where A has shape
// (n, m) with m >= n (rows are parameters, columns are residuals) and b has
// length m, via the normal equations: S = A*A^T (+ prior), rhs = A*b,
// x = S^-1 * rhs.
//
// If prior is non-nil it must be an (n,n) symmetric matrix added to S
// before inversion (the solver's a-priori correlation weight). S is
// diagonally pre-conditioned by the inverse square roots of its diagonal
// before inversion, to reduce its condition number. Returns ErrSingularMatrix
// if S has a zero (or numerically zero) pivot after partial pivoting.
func Lstsq(a Matrix, b Vector, prior *Matrix) (Vector, error) {
	n, m := a.Dims()
	if b.Len() != m {
		panic("linalg: Lstsq: b length does not match A columns")
	}

	var s mat.Dense
	s.Mul(a.d, a.d.T()) // S = A * A^T, shape (n, n)

	if prior != nil {
		s.Add(&s, prior.d)
	}

	var rhs mat.VecDense
	rhs.MulVec(a.d, b.d) // rhs = A * b, length n

	// Diagonal (Jacobi) preconditioning: D = diag(1/sqrt(S_ii)).
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		sii := s.At(i, i)
		if sii <= 0 {
			return Vector{}, ErrSingularMatrix
		}
		d[i] = 1 / math.Sqrt(sii)
	}

	var sp mat.Dense
	sp.CloneFrom(&s)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sp.Set(i, j, sp.At(i, j)*d[i]*d[j])
		}
	}
	rhsp := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhsp.SetVec(i, rhs.AtVec(i)*d[i])
	}

	var lu mat.LU
	lu.Factorize(&sp)
	if cond := lu.Cond(); cond > 1e14 || isSingular(&lu) {
		return Vector{}, ErrSingularMatrix
	}

	var yp mat.VecDense
	if err := lu.SolveVecTo(&yp, false, rhsp); err != nil {
		return Vector{}, ErrSingularMatrix
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, yp.AtVec(i)*d[i])
	}
	return Vector{d: x}, nil
}

// LstsqDamped solves the Levenberg-Marquardt normal equations:
// S = A*A^T + lambda*diag(A*A^T) (+ prior), x = S^-1*(A*b).
// Shares Lstsq's (n, m) shape convention and diagonal preconditioning.
// lambda == 0 reduces to plain Gauss-Newton. Returns ErrSingularMatrix
// under the same conditions as Lstsq.
func LstsqDamped(a Matrix, b Vector, lambda float64, prior *Matrix) (Vector, error) {
	n, m := a.Dims()
	if b.Len() != m {
		panic("linalg: LstsqDamped: b length does not match A columns")
	}

	var s mat.Dense
	s.Mul(a.d, a.d.T())

	if lambda != 0 {
		for i := 0; i < n; i++ {
			s.Set(i, i, s.At(i, i)*(1+lambda))
		}
	}
	if prior != nil {
		s.Add(&s, prior.d)
	}

	var rhs mat.VecDense
	rhs.MulVec(a.d, b.d)

	d := make([]float64, n)
	for i := 0; i < n; i++ {
		sii := s.At(i, i)
		if sii <= 0 {
			return Vector{}, ErrSingularMatrix
		}
		d[i] = 1 / math.Sqrt(sii)
	}

	var sp mat.Dense
	sp.CloneFrom(&s)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sp.Set(i, j, sp.At(i, j)*d[i]*d[j])
		}
	}
	rhsp := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhsp.SetVec(i, rhs.AtVec(i)*d[i])
	}

	var lu mat.LU
	lu.Factorize(&sp)
	if cond := lu.Cond(); cond > 1e14 || isSingular(&lu) {
		return Vector{}, ErrSingularMatrix
	}

	var yp mat.VecDense
	if err := lu.SolveVecTo(&yp, false, rhsp); err != nil {
		return Vector{}, ErrSingularMatrix
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, yp.AtVec(i)*d[i])
	}
	return Vector{d: x}, nil
}

func isSingular(lu *mat.LU) bool {
	// The pivots live on U's diagonal (L's is unit by construction); a zero
	// there signals exact singularity that Cond() can under-report for some
	// degenerate inputs, so check directly.
	var u mat.TriDense
	lu.UTo(&u)
	n, _ := u.Dims()
	for i := 0; i < n; i++ {
		if u.At(i, i) == 0 {
			return true
		}
	}
	return false
}
