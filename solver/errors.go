// Package solver implements the Levenberg-Marquardt least-squares solver:
// per iteration it asks the residual assembler for a residual vector and
// Jacobian, forms the damped normal equations, explores three candidate
// damping factors in parallel, and accepts the best one, logging each
// accepted iteration through an IterationsSaver capability.
package solver

import "errors"

// ErrInsufficientPoints is returned when an interval has fewer than seven
// scalar measurements.
var ErrInsufficientPoints = errors.New("solver: fewer than seven scalar measurements in interval")

// ErrNotLoaded is returned when Solve is called before the motion model's
// harmonics table has been set.
var ErrNotLoaded = errors.New("solver: harmonics table not initialized")
