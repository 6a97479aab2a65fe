// Package forecast implements the trajectory wrapper: an immutable array
// of (t_k, state_k) samples produced by a completed integration, offering
// polynomial interpolation to an arbitrary instant within the integrated
// span.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/anupshinde/astrofit/integrator"
	"github.com/anupshinde/astrofit/timeframe"
)

// ErrOutOfRange is returned by Point when the query instant falls outside
// [T0, Tk] (the forecast's integrated span).
var ErrOutOfRange = errors.New("forecast: instant out of range")

// DefaultDegree is the default Lagrange interpolation degree.
const DefaultDegree = 4

// Forecast is an immutable, cheap-to-share trajectory: the full sequence
// of samples on a uniform grid of step H, plus the step itself. It may be
// shared by reference across goroutines.
type Forecast struct {
	t    []timeframe.Instant
	y    [][]float64
	step time.Duration
}

// FromResult wraps a completed integration as a Forecast.
func FromResult(res *integrator.Result) *Forecast {
	return &Forecast{t: res.T, y: res.Y, step: res.Step}
}

// Run integrates y0 from tn to tk with step h using f, and wraps the
// result as a Forecast.
func Run(y0 []float64, tn, tk timeframe.Instant, h time.Duration, f integrator.Deriv) (*Forecast, error) {
	res, err := integrator.Integrate(y0, tn, tk, h, f)
	if err != nil {
		return nil, err
	}
	return FromResult(res), nil
}

// Begin returns the first sample's instant.
func (fc *Forecast) Begin() timeframe.Instant { return fc.t[0] }

// End returns the last sample's instant.
func (fc *Forecast) End() timeframe.Instant { return fc.t[len(fc.t)-1] }

// Step returns the integration step.
func (fc *Forecast) Step() time.Duration { return fc.step }

// Len returns the number of stored samples.
func (fc *Forecast) Len() int { return len(fc.t) }

// Sample returns the k-th stored (t, y) pair verbatim, with no
// interpolation; Point(fc.Begin()) and Sample(0) must agree exactly, and in
// general Sample avoids interpolation error entirely at grid points.
func (fc *Forecast) Sample(k int) (timeframe.Instant, []float64) { return fc.t[k], fc.y[k] }

// Point interpolates the state at instant t using a degree-point Lagrange
// polynomial over the nearest sample window (clamped at the ends). degree
// must be 2 or 4; if t coincides with a grid sample exactly, that sample
// may still be returned through the polynomial (machine-precision exact
// at grid points).
func (fc *Forecast) Point(t timeframe.Instant, degree int) ([]float64, error) {
	if degree != 2 && degree != 4 {
		return nil, fmt.Errorf("forecast: unsupported interpolation degree %d (want 2 or 4)", degree)
	}
	if t.Before(fc.Begin()) || t.After(fc.End()) {
		return nil, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, t.Time(), fc.Begin().Time(), fc.End().Time())
	}

	// A zero-length integration stores exactly one sample; the range check
	// above only admits t == t_0 then, so return that sample exactly.
	n := len(fc.t)
	if n == 1 {
		return cloneVec(fc.y[0]), nil
	}
	if n < degree {
		return nil, fmt.Errorf("forecast: only %d samples stored, need >= %d for degree-%d interpolation", n, degree, degree)
	}

	// t lies in [t_k, t_{k+1}); the window t_{k-degree/2+1} .. t_{k+degree/2}
	// centres it.
	index := int(t.Sub(fc.Begin()) / fc.step)
	if index > 0 {
		index -= min(index, degree/2-1)
	}
	index = min(index, n-degree)
	if index < 0 {
		index = 0
	}

	dim := len(fc.y[0])
	result := make([]float64, dim)
	for k := 0; k < degree; k++ {
		mult := 1.0
		tk := fc.t[index+k]
		for j := 0; j < degree; j++ {
			if j == k {
				continue
			}
			tj := fc.t[index+j]
			up := t.Sub(tj).Seconds()
			down := tk.Sub(tj).Seconds()
			mult *= up / down
		}
		yk := fc.y[index+k]
		for d := 0; d < dim; d++ {
			result[d] += mult * yk[d]
		}
	}
	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func cloneVec(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	return out
}
