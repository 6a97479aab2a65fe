package residual

import "errors"

// ErrInvalidInput is returned when a measurement instant falls outside the
// forecast window constructed for it.
var ErrInvalidInput = errors.New("residual: measurement instant outside forecast window")
