package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/measurement"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/residual"
	"github.com/anupshinde/astrofit/timeframe"
)

// Solver defaults.
const (
	DefaultEpsilon = 1e-3
	DefaultMaxIter = 20
	DefaultLambda  = 1e-3
	epsilonFloor   = 1e-12
)

// SolverOptions is the plain value struct passed to Solve; zero-value
// fields fall back to the package defaults via DefaultOptions.
type SolverOptions struct {
	Epsilon       float64
	MaxIter       int
	InitialLambda float64
	Step          time.Duration // not read by Solve: the assembler passed in carries the forecast step
	Degree        int           // interpolation degree, 0 means forecast.DefaultDegree

	FitCoefficient bool // vary the 7th (SRP coefficient) parameter alongside state6

	Analytic bool      // true: residual.AnalyticJacobian; false: FiniteDifferenceJacobian
	FDDeltas []float64 // perturbation sizes for the finite-difference path, length 6; ignored when Analytic

	Prior *linalg.Matrix // optional a-priori correlation weight (stateDim x stateDim)
	Saver IterationsSaver
}

// DefaultOptions returns the default tolerances with the analytic
// Jacobian path and a no-op saver.
func DefaultOptions() SolverOptions {
	return SolverOptions{
		Epsilon: DefaultEpsilon, MaxIter: DefaultMaxIter, InitialLambda: DefaultLambda,
		Step: 10 * time.Second, Degree: forecast.DefaultDegree, Analytic: true, Saver: NoopSaver{},
	}
}

func (o SolverOptions) normalized() SolverOptions {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.InitialLambda <= 0 {
		o.InitialLambda = DefaultLambda
	}
	if o.Degree == 0 {
		o.Degree = forecast.DefaultDegree
	}
	if o.Step == 0 {
		o.Step = 10 * time.Second
	}
	if o.Saver == nil {
		o.Saver = NoopSaver{}
	}
	if !o.Analytic && len(o.FDDeltas) == 0 {
		// 1 m in position, 1 mm/s in velocity: small against any orbit,
		// large against float64 round-off over a day-scale forecast.
		o.FDDeltas = []float64{1, 1, 1, 1e-3, 1e-3, 1e-3}
	}
	return o
}

// Result is the outcome of a Solve call.
type Result struct {
	State      astrostate.State6
	S          float64 // SRP coefficient, refined only if FitCoefficient
	Residual   float64
	Iterations int
	Converged  bool
}

// isEqual is the relative convergence test:
// |rPrev - rNew| < eps*max(|rPrev|,|rNew|), with an absolute floor of
// eps*1e-12 for near-zero residuals.
func isEqual(rPrev, rNew, eps float64) bool {
	threshold := eps * math.Max(math.Abs(rPrev), math.Abs(rNew))
	if floor := eps * epsilonFloor; threshold < floor {
		threshold = floor
	}
	return math.Abs(rPrev-rNew) < threshold
}

func stateFromVector(v []float64, stateDim int, fixedS float64) (astrostate.State6, float64) {
	x0 := timeframe.State6FromFlat(v[:6])
	if stateDim == 7 {
		return x0, v[6]
	}
	return x0, fixedS
}

// applyCorrection returns v with delta subtracted: LstsqDamped solves
// J*x ~ r directly (b = r, not -r), so the accepted Gauss-Newton step is
// the negative of its result.
func applyCorrection(v, delta []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] - delta[i]
	}
	return out
}

func cloneSlice(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

type dampingTrial struct {
	lambda float64
	norm   float64
	vNext  []float64
	delta  []float64
	ok     bool
}

// Solve runs Levenberg-Marquardt to refine initial (and, if
// opts.FitCoefficient, s0) against the measurements in iv, forecasting
// from epoch. On a failed solve it returns the best iterate seen so far
// together with the error.
func Solve(model *motion.Model, a *residual.Assembler, initial astrostate.State6, s0 float64, epoch timeframe.Instant, iv *measurement.MeasuringInterval, opts SolverOptions) (Result, error) {
	if model == nil || model.Geopotential == nil || model.Table == nil {
		return Result{}, ErrNotLoaded
	}
	if iv.PointsCount() < 7 {
		return Result{}, ErrInsufficientPoints
	}
	if !opts.Analytic && opts.FitCoefficient {
		return Result{}, fmt.Errorf("solver: finite-difference Jacobian does not support fitting the 7th coefficient")
	}
	opts = opts.normalized()

	stateDim := 6
	if opts.FitCoefficient {
		stateDim = 7
	}

	v := initial.Flatten6()
	if stateDim == 7 {
		v = append(v, s0)
	}

	lambda := opts.InitialLambda
	x0, s := stateFromVector(v, stateDim, s0)
	best := Result{State: x0, S: s}
	prevNorm := math.NaN()

	for iter := 0; iter < opts.MaxIter; iter++ {
		x0, s := stateFromVector(v, stateDim, s0)

		var res linalg.Vector
		var jac linalg.Matrix
		var err error
		if opts.Analytic {
			res, jac, err = a.AnalyticJacobian(x0, s, stateDim, stateDim, epoch, iv)
		} else {
			res, jac, err = a.FiniteDifferenceJacobian(cloneSlice(v), s, stateDim, opts.FDDeltas, epoch, iv)
		}
		if err != nil {
			return best, err
		}

		norm := res.Norm()
		best = Result{State: x0, S: s, Residual: norm, Iterations: iter}
		if math.IsNaN(prevNorm) {
			prevNorm = norm
		}

		candidates := [3]float64{0.5 * lambda, lambda, 1.5 * lambda}
		trials := make([]dampingTrial, len(candidates))
		g, _ := errgroup.WithContext(context.Background())
		for ci := range candidates {
			ci := ci
			g.Go(func() error {
				trials[ci] = evalDampingCandidate(a, v, s, stateDim, epoch, iv, candidates[ci], opts.Prior, res, jac)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return best, err
		}

		bestIdx := 0
		for i := 1; i < len(trials); i++ {
			if trials[i].norm < trials[bestIdx].norm {
				bestIdx = i
			}
		}
		winner := trials[bestIdx]
		// Left candidate (0.5*lambda) winning means the residual-vs-lambda
		// slope is negative near the current lambda: shrink it; otherwise
		// grow it.
		if bestIdx == 0 {
			lambda = 0.5 * lambda
		} else {
			lambda = 1.5 * lambda
		}

		if !winner.ok || winner.norm >= norm {
			if isEqual(prevNorm, norm, opts.Epsilon) {
				best.Converged = true
				return best, nil
			}
			prevNorm = norm
			continue
		}

		v = winner.vNext
		x1, s1 := stateFromVector(v, stateDim, s0)
		converged := isEqual(norm, winner.norm, opts.Epsilon)
		best = Result{State: x1, S: s1, Residual: winner.norm, Iterations: iter + 1, Converged: converged}

		opts.Saver.Save(IterationRecord{
			Iter: iter, Residual: winner.norm, Lambda: winner.lambda,
			V: cloneSlice(v), DV: winner.delta, RV: res.Slice(),
		})

		if converged {
			return best, nil
		}
		prevNorm = winner.norm
	}

	return best, nil
}

// evalDampingCandidate solves the damped normal equations for one
// candidate lambda and measures the resulting residual norm with a fresh
// forecast. A solve or propagation failure here is recoverable: the
// candidate is scored with infinite residual rather than aborting the
// iteration.
func evalDampingCandidate(a *residual.Assembler, v []float64, s float64, stateDim int, epoch timeframe.Instant, iv *measurement.MeasuringInterval, lambda float64, prior *linalg.Matrix, res linalg.Vector, jac linalg.Matrix) dampingTrial {
	delta, err := linalg.LstsqDamped(jac, res, lambda, prior)
	if err != nil {
		return dampingTrial{lambda: lambda, norm: math.Inf(1)}
	}
	vNext := applyCorrection(v, delta.Slice())
	x1, s1 := stateFromVector(vNext, stateDim, s)
	r1, err := a.Residuals(x1, s1, epoch, iv)
	if err != nil {
		return dampingTrial{lambda: lambda, norm: math.Inf(1)}
	}
	return dampingTrial{lambda: lambda, norm: r1.Norm(), vNext: vNext, delta: delta.Slice(), ok: true}
}
