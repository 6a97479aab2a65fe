// Package integrator implements the predictor-corrector multistep
// propagator: an Adams-Bashforth-Moulton scheme of
// order 8, bootstrapped by Runge-Kutta 4, storing the full evaluated
// trajectory on a uniform time grid.
//
// The right-hand side operates on a plain []float64 so the same integrator
// serves both the plain 6-state motion model and the 6+6k/7+7k variational
// state: the integrator itself is agnostic to what the vector represents.
package integrator

import (
	"errors"
	"fmt"
	"time"

	"github.com/anupshinde/astrofit/timeframe"
)

// Degree is the order of the Adams-Bashforth-Moulton corrector.
const Degree = 8

// ErrInvalidStep is returned when the step is zero or its sign disagrees
// with the direction of integration.
var ErrInvalidStep = errors.New("integrator: step must be nonzero and its sign must match the integration direction")

// Deriv is the right-hand side f(y, t) -> ydot of the equations of motion.
// Any error aborts integration and is propagated verbatim to the caller.
type Deriv func(y []float64, t timeframe.Instant) ([]float64, error)

// Result is the full evaluated trajectory on a uniform grid of step h:
// t_0 <= t_1 <= ... <= t_N with t_{k+1} - t_k = h.
type Result struct {
	T    []timeframe.Instant
	Y    [][]float64
	Step time.Duration
}

// abPredictorWeights and amCorrectorWeights are the Adams-Bashforth order-8
// predictor and Adams-Moulton order-8 corrector weights:
// abPredictorWeights multiplies the 8 most recent derivatives (oldest to
// newest) to form the predicted step; amCorrectorWeights forms the
// corrector, its last entry weighting the derivative evaluated at the
// predicted point.
var (
	abPredictorWeights = [8]float64{
		-0.3042245370370370572,
		2.445163690476190421,
		-8.612127976190476986,
		17.37965443121693454,
		-22.02775297619047734,
		18.05453869047619264,
		-9.525206679894179018,
		3.589955357142857295,
	}
	amCorrectorWeights = [8]float64{
		0.01136739417989418056,
		-0.09384093915343914849,
		0.343080357142857173,
		-0.732035383597883671,
		1.017964616402116551,
		-1.0069196428571429713,
		1.156159060846560838,
		0.3042245370370370017,
	}
)

// Integrate propagates y0 from tn to tk with fixed step h, using an RK4
// bootstrap for the first Degree-1 steps and the ABM8 predictor-corrector
// for the rest. It eagerly computes and stores the full trajectory.
func Integrate(y0 []float64, tn, tk timeframe.Instant, h time.Duration, f Deriv) (*Result, error) {
	if h == 0 {
		return nil, ErrInvalidStep
	}
	span := tk.Sub(tn)
	if span != 0 && (h > 0) != (span > 0) {
		return nil, ErrInvalidStep
	}

	dim := len(y0)
	n := int(span / h)
	if n < 0 {
		n = 0
	}
	count := n + 1

	ts := make([]timeframe.Instant, count)
	ys := make([][]float64, count)
	ts[0] = tn
	ys[0] = cloneVec(y0)

	bootstrap := Degree - 1
	if bootstrap > count-1 {
		bootstrap = count - 1
	}

	// history holds the last up-to-Degree derivative vectors, oldest first,
	// populated as the RK4 bootstrap advances (matching the original's
	// arr[i-1] = func(points[i-1]) assignment inside its bootstrap loop).
	history := make([][]float64, 0, Degree)
	for i := 0; i < bootstrap; i++ {
		deriv, err := f(ys[i], ts[i])
		if err != nil {
			return nil, fmt.Errorf("integrator: bootstrap step %d: %w", i, err)
		}
		history = append(history, deriv)

		y, t, err := rk4Step(ys[i], ts[i], h, f)
		if err != nil {
			return nil, fmt.Errorf("integrator: bootstrap step %d: %w", i, err)
		}
		ys[i+1] = y
		ts[i+1] = t
	}

	for i := bootstrap; i < count-1; i++ {
		deriv, err := f(ys[i], ts[i])
		if err != nil {
			return nil, fmt.Errorf("integrator: multistep %d: %w", i, err)
		}
		history = append(history, deriv)
		if len(history) > Degree {
			history = history[len(history)-Degree:]
		}

		y, t, err := adamsStep(history, ys[i], ts[i], h, f, dim)
		if err != nil {
			return nil, fmt.Errorf("integrator: multistep %d: %w", i, err)
		}
		ys[i+1] = y
		ts[i+1] = t
	}

	return &Result{T: ts, Y: ys, Step: h}, nil
}

func rk4Step(y []float64, t timeframe.Instant, h time.Duration, f Deriv) ([]float64, timeframe.Instant, error) {
	dt := h.Seconds()
	half := t.Add(h / 2)
	end := t.Add(h)

	k1, err := f(y, t)
	if err != nil {
		return nil, timeframe.Instant{}, err
	}
	k2, err := f(axpy(y, dt/2, k1), half)
	if err != nil {
		return nil, timeframe.Instant{}, err
	}
	k3, err := f(axpy(y, dt/2, k2), half)
	if err != nil {
		return nil, timeframe.Instant{}, err
	}
	k4, err := f(axpy(y, dt, k3), end)
	if err != nil {
		return nil, timeframe.Instant{}, err
	}

	out := make([]float64, len(y))
	for i := range out {
		out[i] = y[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out, end, nil
}

// adamsStep performs one ABM8 predictor-corrector step. history must hold
// the Degree most recent derivative vectors ending with the derivative at
// (y, t) itself.
func adamsStep(history [][]float64, y []float64, t timeframe.Instant, h time.Duration, f Deriv, dim int) ([]float64, timeframe.Instant, error) {
	dt := h.Seconds()
	end := t.Add(h)

	predicted := make([]float64, dim)
	for i := 0; i < Degree; i++ {
		w := abPredictorWeights[i]
		for j := 0; j < dim; j++ {
			predicted[j] += w * history[i][j]
		}
	}
	for j := 0; j < dim; j++ {
		predicted[j] = y[j] + dt*predicted[j]
	}

	corrected := make([]float64, dim)
	for i := 1; i < Degree; i++ {
		w := amCorrectorWeights[i-1]
		for j := 0; j < dim; j++ {
			corrected[j] += w * history[i][j]
		}
	}

	predDeriv, err := f(predicted, end)
	if err != nil {
		return nil, timeframe.Instant{}, err
	}
	wLast := amCorrectorWeights[Degree-1]
	for j := 0; j < dim; j++ {
		corrected[j] = y[j] + dt*(corrected[j]+wLast*predDeriv[j])
	}

	return corrected, end, nil
}

func axpy(y []float64, a float64, dy []float64) []float64 {
	out := make([]float64, len(y))
	for i := range out {
		out[i] = y[i] + a*dy[i]
	}
	return out
}

func cloneVec(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	return out
}
