// Package rotation implements the auxiliary spin-axis/angular-rate
// estimator: from a photometric magnitude series
// against a known observation geometry, it recovers a flat-plate
// reflector's spin axis, angular velocity, and body-normal orientation.
// Kept in the core because the downstream extended motion model consumes
// its output, but peripheral to the orbit-determination path itself.
//
// The 5D grid search narrows its own bounds round by round; the final
// angular-velocity refinement delegates to the search package's 1D
// golden-section minimizer.
package rotation

import (
	"errors"
	"math"
	"sort"

	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/search"
)

// ErrInsufficientSamples is returned when fewer than three photometric
// samples are supplied.
var ErrInsufficientSamples = errors.New("rotation: need at least 3 photometric samples")

// Sample is one photometric observation with its known geometry at the
// observation instant: range and line-of-sight direction come from the
// already-fitted trajectory and ephemeris, not from this package.
type Sample struct {
	T           float64        // seconds since the first sample
	Range       float64        // metres, observer-to-target distance
	CosPhase    float64        // cosine of the solar phase angle
	LineOfSight linalg.Vector3 // unit vector, target to observer, ABS frame
	Magnitude   float64        // stellar magnitude
}

// Estimate is the recovered spin state of a flat-plate reflector.
type Estimate struct {
	AxisInclination   float64 // radians
	AxisAscension     float64 // radians
	AngularVelocity   float64 // rad/s
	NormalInclination float64 // radians, body-normal orientation at T=0
	NormalAscension   float64 // radians
	Residual          float64 // sum of squared errors at the optimum
}

// phaseFunction is the flat-plate diffuse (Lambertian) reflectance law
// used to invert stellar magnitude to cross-section: no flux is
// attributed past grazing incidence.
func phaseFunction(cosPhi float64) float64 {
	if cosPhi < 1e-6 {
		return 1e-6
	}
	return cosPhi
}

// CrossSection inverts the photometry equation
// c = 10^((m+26.58)/-2.5) * r^2 / phase_function(cos phi).
func CrossSection(s Sample) float64 {
	return math.Pow(10, (s.Magnitude+26.58)/-2.5) * s.Range * s.Range / phaseFunction(s.CosPhase)
}

func normalizedRatios(samples []Sample) []float64 {
	c0 := CrossSection(samples[0])
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = CrossSection(s) / c0
	}
	return out
}

func meanAmplitude(ratios []float64) (mean, amp float64) {
	for _, r := range ratios {
		mean += r
	}
	mean /= float64(len(ratios))
	lo, hi := ratios[0], ratios[0]
	for _, r := range ratios {
		if r > hi {
			hi = r
		}
		if r < lo {
			lo = r
		}
	}
	return mean, (hi - lo) / 2
}

// linearizeFrequency estimates the oscillation angular frequency by
// fitting asin((c-mean)/amp) = omega*t + phi0 with a degree-1 polynomial
// fit.
func linearizeFrequency(times, ratios []float64) float64 {
	mean, amp := meanAmplitude(ratios)
	if amp == 0 {
		return 0
	}
	var sumT, sumY, sumTT, sumTY float64
	for i, r := range ratios {
		x := (r - mean) / amp
		if x < -1 {
			x = -1
		} else if x > 1 {
			x = 1
		}
		y := math.Asin(x)
		t := times[i]
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
	}
	n := float64(len(ratios))
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	return (n*sumTY - sumT*sumY) / denom
}

func unitVector(inclination, ascension float64) linalg.Vector3 {
	sinI, cosI := math.Sincos(inclination)
	sinA, cosA := math.Sincos(ascension)
	return linalg.NewVector3(cosI*cosA, cosI*sinA, sinI)
}

// params is the 5D unknown vector:
// (axis_inclination, axis_ascension, angular_velocity, normal_inclination,
// normal_ascension).
type params [5]float64

func (p params) axis() linalg.Vector3    { return unitVector(p[0], p[1]) }
func (p params) omega() float64          { return p[2] }
func (p params) normal0() linalg.Vector3 { return unitVector(p[3], p[4]) }

// cost is the squared error between the measured cross-section ratio
// series and the model (n_hat(t) . s_hat(t))^2 where n_hat(t) =
// Rot(axis, omega*t) * n_hat_0.
func cost(samples []Sample, ratios []float64, p params) float64 {
	axis := p.axis()
	n0 := p.normal0()
	omega := p.omega()
	var sum float64
	for i, s := range samples {
		q := linalg.FromAxisAngle(axis, omega*s.T)
		n := q.Rotate(n0)
		pred := n.Dot(s.LineOfSight)
		pred *= pred
		d := pred - ratios[i]
		sum += d * d
	}
	return sum
}

type bounds struct{ lo, hi float64 }

func sampleAxis(b bounds, i, n int) float64 {
	if n == 1 {
		return (b.lo + b.hi) / 2
	}
	return b.lo + (b.hi-b.lo)*float64(i)/float64(n-1)
}

const (
	gridPointsPerAxis = 5
	maxGridRounds     = 12
	gridConvergence   = 1e-9
)

// gridSearch performs a 5D grid search
// refined around the running minimum until the residual stabilizes.
func gridSearch(samples []Sample, ratios []float64, omega0 float64) Estimate {
	omegaSpan := math.Abs(omega0)
	if omegaSpan == 0 {
		omegaSpan = 0.1
	}
	b := [5]bounds{
		{-math.Pi / 2, math.Pi / 2},
		{0, 2 * math.Pi},
		{omega0 - omegaSpan, omega0 + omegaSpan},
		{-math.Pi / 2, math.Pi / 2},
		{0, 2 * math.Pi},
	}

	var best params
	bestCost := math.Inf(1)
	prevCost := math.Inf(1)

	for round := 0; round < maxGridRounds; round++ {
		for i0 := 0; i0 < gridPointsPerAxis; i0++ {
			p0 := sampleAxis(b[0], i0, gridPointsPerAxis)
			for i1 := 0; i1 < gridPointsPerAxis; i1++ {
				p1 := sampleAxis(b[1], i1, gridPointsPerAxis)
				for i2 := 0; i2 < gridPointsPerAxis; i2++ {
					p2 := sampleAxis(b[2], i2, gridPointsPerAxis)
					for i3 := 0; i3 < gridPointsPerAxis; i3++ {
						p3 := sampleAxis(b[3], i3, gridPointsPerAxis)
						for i4 := 0; i4 < gridPointsPerAxis; i4++ {
							p4 := sampleAxis(b[4], i4, gridPointsPerAxis)
							p := params{p0, p1, p2, p3, p4}
							c := cost(samples, ratios, p)
							if c < bestCost {
								bestCost = c
								best = p
							}
						}
					}
				}
			}
		}

		for i := range b {
			width := (b[i].hi - b[i].lo) / 4
			center := best[i]
			b[i] = bounds{center - width, center + width}
		}

		if math.Abs(prevCost-bestCost) < gridConvergence*math.Max(1, bestCost) {
			break
		}
		prevCost = bestCost
	}

	return Estimate{
		AxisInclination:   best[0],
		AxisAscension:     best[1],
		AngularVelocity:   best[2],
		NormalInclination: best[3],
		NormalAscension:   best[4],
		Residual:          bestCost,
	}
}

// refineOmega narrows the grid search's angular-velocity coordinate with
// a golden-section minimization of cost, axis/normal held fixed at the
// grid optimum. Returns est unchanged if no interior minimum is
// bracketed.
func refineOmega(samples []Sample, ratios []float64, est Estimate, span float64) Estimate {
	if span <= 0 {
		return est
	}
	f := func(omega float64) float64 {
		p := params{est.AxisInclination, est.AxisAscension, omega, est.NormalInclination, est.NormalAscension}
		return cost(samples, ratios, p)
	}
	minima, err := search.FindMinima(est.AngularVelocity-span, est.AngularVelocity+span, span/20, f, span/1e4)
	if err != nil || len(minima) == 0 {
		return est
	}
	best := minima[0]
	for _, m := range minima[1:] {
		if m.Value < best.Value {
			best = m
		}
	}
	if best.Value >= est.Residual {
		return est
	}
	est.AngularVelocity = best.X
	est.Residual = best.Value
	return est
}

// EstimateSpin recovers spin axis, angular rate, and body-normal
// orientation from photometric samples and their known geometry.
func EstimateSpin(samples []Sample) (Estimate, error) {
	if len(samples) < 3 {
		return Estimate{}, ErrInsufficientSamples
	}
	sorted := append([]Sample(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	ratios := normalizedRatios(sorted)
	times := make([]float64, len(sorted))
	for i, s := range sorted {
		times[i] = s.T
	}
	omega0 := linearizeFrequency(times, ratios)
	est := gridSearch(sorted, ratios, omega0)

	gridSpan := math.Abs(omega0)
	if gridSpan == 0 {
		gridSpan = 0.1
	}
	finalSpan := gridSpan / math.Pow(4, maxGridRounds)
	return refineOmega(sorted, ratios, est, finalSpan*4), nil
}
