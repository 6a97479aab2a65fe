// Package residual implements the residual assembler: for each measurement
// in an interval, it forecasts the candidate state to the measurement
// instant, converts the predicted position into the observatory-referenced
// spherical frame, and emits the declination and right-ascension residuals,
// optionally alongside an analytic or finite-difference Jacobian.
package residual

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anupshinde/astrofit/astrostate"
	"github.com/anupshinde/astrofit/forecast"
	"github.com/anupshinde/astrofit/integrator"
	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/measurement"
	"github.com/anupshinde/astrofit/motion"
	"github.com/anupshinde/astrofit/timeframe"
)

const twoPi = 2 * math.Pi

// wrap selects the signed-shortest representative of delta modulo a full
// turn: wrap(delta) = delta - 2*pi*round(delta/(2*pi)). Measurements
// are canonicalised into [0, 2*pi) at ingest (measurement.NewM), so this
// is the only wrap applied at residual time.
func wrap(delta float64) float64 {
	return delta - twoPi*math.Round(delta/twoPi)
}

// Assembler builds residual vectors (and, on request, Jacobians) for a
// motion.Model over a measuring interval.
type Assembler struct {
	Model  *motion.Model
	Step   time.Duration
	Degree int // Lagrange interpolation degree, 2 or 4; 0 means forecast.DefaultDegree
}

// NewAssembler builds an Assembler with the default interpolation degree.
func NewAssembler(model *motion.Model, step time.Duration) *Assembler {
	return &Assembler{Model: model, Step: step, Degree: forecast.DefaultDegree}
}

func (a *Assembler) degree() int {
	if a.Degree == 0 {
		return forecast.DefaultDegree
	}
	return a.Degree
}

// lastInstant returns the latest measurement instant within iv.
func lastInstant(iv *measurement.MeasuringInterval) (timeframe.Instant, bool) {
	var last timeframe.Instant
	found := false
	iv.ForEach(func(p measurement.Point) bool {
		if !found || p.M.T.After(last) {
			last = p.M.T
		}
		found = true
		return true
	})
	return last, found
}

func plainDeriv(model *motion.Model, s float64) integrator.Deriv {
	return func(y []float64, t timeframe.Instant) ([]float64, error) {
		state := astrostate.State6{
			R: linalg.NewVector3(y[0], y[1], y[2]),
			V: linalg.NewVector3(y[3], y[4], y[5]),
		}
		d, err := model.Plain(state, s, t)
		if err != nil {
			return nil, err
		}
		return []float64{d.R.X, d.R.Y, d.R.Z, d.V.X, d.V.Y, d.V.Z}, nil
	}
}

func variationalDeriv(model *motion.Model, rows, k int, s float64) integrator.Deriv {
	return func(y []float64, t timeframe.Instant) ([]float64, error) {
		state := astrostate.Unflatten(y, rows, k)
		dot, err := model.Variational(state, s, t)
		if err != nil {
			return nil, err
		}
		return dot.Flatten(), nil
	}
}

// predictedAngles interpolates fc to t, converts the geocentric GRW
// Cartesian prediction to a topocentric ABS (dec, ra) direction relative
// to observatory obsGRW, and also returns
// the topocentric ABS Cartesian vector for Jacobian callers.
func (a *Assembler) predictedAngles(fc *forecast.Forecast, obsGRW linalg.Vector3, t timeframe.Instant) (dec, ra float64, topoABS linalg.Vector3, err error) {
	y, perr := fc.Point(t, a.degree())
	if perr != nil {
		return 0, 0, linalg.Vector3{}, fmt.Errorf("%w: %v", ErrInvalidInput, perr)
	}
	posGRW := linalg.NewVector3(y[0], y[1], y[2])
	topoGRW := posGRW.Sub(obsGRW)
	topoABS = timeframe.GRWORTToABSORT(topoGRW, t)
	sph := timeframe.CartesianToABSSpherical(topoABS)
	return sph.Declination, sph.RightAscension, topoABS, nil
}

// Residuals forecasts x0 (s is the SRP coefficient, used only when
// model.EnableSRP; drag uses model.Ballistic) from epoch out to the
// interval's last measurement, and
// returns the 2*PointsCount() residual vector: (M.i - phi_pred,
// wrap(M.a - lambda_pred)) per measurement, measurements in iteration
// order.
func (a *Assembler) Residuals(x0 astrostate.State6, s float64, epoch timeframe.Instant, iv *measurement.MeasuringInterval) (linalg.Vector, error) {
	last, ok := lastInstant(iv)
	if !ok {
		return linalg.NewVector(0), nil
	}
	fc, err := forecast.Run(x0.Flatten6(), epoch, last, a.Step, plainDeriv(a.Model, s))
	if err != nil {
		return linalg.Vector{}, err
	}
	return a.residualsFromForecast(fc, iv)
}

func (a *Assembler) residualsFromForecast(fc *forecast.Forecast, iv *measurement.MeasuringInterval) (linalg.Vector, error) {
	out := make([]float64, 0, 2*iv.PointsCount())
	var outerErr error
	iv.ForEach(func(p measurement.Point) bool {
		dec, ra, _, err := a.predictedAngles(fc, p.Seance.Observatory, p.M.T)
		if err != nil {
			outerErr = err
			return false
		}
		out = append(out, p.M.Declination-dec, wrap(p.M.Ascension-ra))
		return true
	})
	if outerErr != nil {
		return linalg.Vector{}, outerErr
	}
	return linalg.VectorFromSlice(out), nil
}

// AnalyticJacobian forecasts the variational state (6+6k or 7+7k, per
// stateDim) from epoch, and for each measurement computes the residual
// pair and its (k x 2) closed-form Jacobian block, assembled into a
// (k x 2*PointsCount()) matrix in the
// linalg.Lstsq convention (rows are parameters, columns are residuals).
func (a *Assembler) AnalyticJacobian(x0 astrostate.State6, s float64, stateDim, k int, epoch timeframe.Instant, iv *measurement.MeasuringInterval) (linalg.Vector, linalg.Matrix, error) {
	last, ok := lastInstant(iv)
	if !ok {
		return linalg.NewVector(0), linalg.NewMatrix(k, 0), nil
	}

	ext := astrostate.NewExtendedState(x0, stateDim, k)
	ext.SetIdentity6()
	fc, err := forecast.Run(ext.Flatten(), epoch, last, a.Step, variationalDeriv(a.Model, stateDim, k, s))
	if err != nil {
		return linalg.Vector{}, linalg.Matrix{}, err
	}

	n := iv.PointsCount()
	residuals := make([]float64, 0, 2*n)
	jac := linalg.NewMatrix(k, 2*n)

	col := 0
	var outerErr error
	iv.ForEach(func(p measurement.Point) bool {
		y, perr := fc.Point(p.M.T, a.degree())
		if perr != nil {
			outerErr = fmt.Errorf("%w: %v", ErrInvalidInput, perr)
			return false
		}
		es := astrostate.Unflatten(y, stateDim, k)
		posGRW := es.X6.R
		topoGRW := posGRW.Sub(p.Seance.Observatory)
		topoABS := timeframe.GRWORTToABSORT(topoGRW, p.M.T)
		sph := timeframe.CartesianToABSSpherical(topoABS)

		residuals = append(residuals, p.M.Declination-sph.Declination, wrap(p.M.Ascension-sph.RightAscension))

		// d(residual)/d(param) = -d(prediction)/d(param): wrap() only ever
		// adds a constant multiple of 2*pi, so its derivative is 1 almost
		// everywhere and the branch choice doesn't affect the Jacobian.
		dDec, dRA := sphericalAngleGradients(topoABS)
		for j := 0; j < k; j++ {
			dPos := linalg.NewVector3(es.At(0, j), es.At(1, j), es.At(2, j))
			dTopoABS := timeframe.GRWORTToABSORT(dPos, p.M.T)
			jac.Set(j, col, -dDec.Dot(dTopoABS))
			jac.Set(j, col+1, -dRA.Dot(dTopoABS))
		}
		col += 2
		return true
	})
	if outerErr != nil {
		return linalg.Vector{}, linalg.Matrix{}, outerErr
	}
	return linalg.VectorFromSlice(residuals), jac, nil
}

func sphericalAngleGradients(v linalg.Vector3) (dDec, dRA linalg.Vector3) {
	r := v.Norm()
	if r < 1e-9 {
		r = 1e-9
	}
	rho := math.Hypot(v.X, v.Y)
	if rho < 1e-9 {
		rho = 1e-9
	}
	dDec = linalg.NewVector3(-v.X*v.Z/(r*r*rho), -v.Y*v.Z/(r*r*rho), rho/(r*r))
	dRA = linalg.NewVector3(-v.Y/(rho*rho), v.X/(rho*rho), 0)
	return
}

// FiniteDifferenceJacobian computes the residual vector and a numerical
// Jacobian by perturbing each of k parameters of x0Vec (a flattened State6
// or State7, length stateDim) by delta[j] and re-propagating each
// perturbation with its own integrator. Used when the variational
// propagator is disabled. The propagations run concurrently via errgroup,
// which captures and rethrows the first task error after join.
func (a *Assembler) FiniteDifferenceJacobian(x0Vec []float64, s float64, stateDim int, deltas []float64, epoch timeframe.Instant, iv *measurement.MeasuringInterval) (linalg.Vector, linalg.Matrix, error) {
	k := len(deltas)
	last, ok := lastInstant(iv)
	if !ok {
		return linalg.NewVector(0), linalg.NewMatrix(k, 0), nil
	}

	baseFc, err := forecast.Run(cloneVec(x0Vec), epoch, last, a.Step, plainDeriv(a.Model, s))
	if err != nil {
		return linalg.Vector{}, linalg.Matrix{}, err
	}
	baseResiduals, err := a.residualsFromForecast(baseFc, iv)
	if err != nil {
		return linalg.Vector{}, linalg.Matrix{}, err
	}

	n := baseResiduals.Len()
	jac := linalg.NewMatrix(k, n)
	g, _ := errgroup.WithContext(context.Background())
	for j := 0; j < k; j++ {
		j := j
		g.Go(func() error {
			perturbed := cloneVec(x0Vec)
			perturbed[j] += deltas[j]
			fc, err := forecast.Run(perturbed, epoch, last, a.Step, plainDeriv(a.Model, s))
			if err != nil {
				return err
			}
			r, err := a.residualsFromForecast(fc, iv)
			if err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				jac.Set(j, i, (r.At(i)-baseResiduals.At(i))/deltas[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return linalg.Vector{}, linalg.Matrix{}, err
	}
	return baseResiduals, jac, nil
}

func cloneVec(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	return out
}
