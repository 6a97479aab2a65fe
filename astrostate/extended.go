package astrostate

import "github.com/anupshinde/astrofit/linalg"

// ExtendedState is State6 concatenated with the column-major contents of a
// Rows x K variational (state-transition) matrix, Rows being 6 when the
// SRP/ballistic coefficient is not one of the varied parameters or 7 when
// it is, and K the number of varied parameters. Its flattened dimension is
// 6 + Rows*K.
type ExtendedState struct {
	X6   State6
	Rows int
	K    int
	Phi  []float64 // column-major, length Rows*K
}

// NewExtendedState allocates an ExtendedState with a zeroed Phi block.
func NewExtendedState(x6 State6, rows, k int) ExtendedState {
	return ExtendedState{X6: x6, Rows: rows, K: k, Phi: make([]float64, rows*k)}
}

// Dim returns the flattened vector length 6 + Rows*K.
func (e ExtendedState) Dim() int { return 6 + e.Rows*e.K }

// At returns Phi[row][col], 0-based.
func (e ExtendedState) At(row, col int) float64 {
	return e.Phi[col*e.Rows+row]
}

// Set assigns Phi[row][col].
func (e *ExtendedState) Set(row, col int, v float64) {
	e.Phi[col*e.Rows+row] = v
}

// SetIdentity6 initializes Phi's leading diagonal to the identity, the
// standard variational initial condition Phi(t0) = I. In the 7x7 case
// this includes the (6,6) entry: the SRP coefficient's sensitivity to
// itself starts at 1 and stays constant. Off-diagonal entries and any
// columns beyond min(Rows, K) stay zero.
func (e *ExtendedState) SetIdentity6() {
	cols := e.K
	if cols > e.Rows {
		cols = e.Rows
	}
	for c := 0; c < cols; c++ {
		e.Set(c, c, 1)
	}
}

// Flatten writes the state into a single vector: the first 6 entries are
// X6's position and velocity, followed by Phi in column-major order.
func (e ExtendedState) Flatten() []float64 {
	out := make([]float64, e.Dim())
	out[0], out[1], out[2] = e.X6.R.X, e.X6.R.Y, e.X6.R.Z
	out[3], out[4], out[5] = e.X6.V.X, e.X6.V.Y, e.X6.V.Z
	copy(out[6:], e.Phi)
	return out
}

// Unflatten rebuilds an ExtendedState of the given shape from a flattened
// vector produced by Flatten.
func Unflatten(v []float64, rows, k int) ExtendedState {
	e := NewExtendedState(State6{
		R: linalg.NewVector3(v[0], v[1], v[2]),
		V: linalg.NewVector3(v[3], v[4], v[5]),
	}, rows, k)
	copy(e.Phi, v[6:])
	return e
}
