package linalg

import "errors"

// ErrSingularMatrix is returned by Lstsq when the normal-equation matrix has
// a zero pivot after partial pivoting.
var ErrSingularMatrix = errors.New("linalg: singular matrix in least-squares solve")
