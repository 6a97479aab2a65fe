package atmosphere

import (
	"math"

	"github.com/anupshinde/astrofit/linalg"
)

// Static evaluates the h < 120 km piecewise exponential density model,
// rho = a0 * exp(h*(k1*h - k2)), at altitude hKm (kilometres).
func Static(hKm float64) float64 {
	index := 0
	for i := 1; i < len(staticHeight); i++ {
		if hKm >= staticHeight[i] {
			index = i
		}
	}
	h := hKm - staticHeight[index]
	c := staticCoef[index]
	return c[0] * math.Exp(h*(c[1]+h*c[2]))
}

// Dynamic evaluates the 120 <= h <= 1500 km density model. pos is the
// satellite position in the GRW Cartesian frame (used only for its
// direction, any consistent length unit is fine); subsolarLongitude and
// subsolarDeclination describe the subsolar point in the same frame,
// computed by the caller from the Sun's position.
func Dynamic(pos linalg.Vector3, hKm float64, dayOfYear int, subsolarLongitude, subsolarDeclination float64, w SpaceWeather) float64 {
	index, f0 := isaBracket(w.F81)

	l := heightBracket(hKm, lHeight, lGreater, lLess, index)
	k0 := 1 + poly(hKm, l)*(w.F81-f0)/f0

	c := heightBracket(hKm, cHeight, cGreater, cLess, index)
	n := nValues[:]
	beta := subsolarLongitude + phiValues[index]
	r := pos.Norm()
	cosphi := 0.0
	if r > 0 {
		cosphi = (1 / r) * (pos.Z*math.Sin(subsolarDeclination) +
			math.Cos(subsolarDeclination)*(pos.X*math.Cos(beta)+pos.Y*math.Sin(beta)))
	}
	cosphi = math.Sqrt(math.Max(0, 0.5*(1+cosphi)))
	k1 := poly(hKm, c) * math.Pow(cosphi, poly(hKm, n))

	d := dValues[index][:]
	a := aValues[:]
	k2 := poly(float64(dayOfYear), a) * poly(hKm, d)

	b := heightBracket(hKm, bHeight, bGreater, bLess, index)
	df := w.F107 - w.F81
	denom := w.F81 + math.Abs(df)
	k3 := 0.0
	if denom != 0 {
		k3 = poly(hKm, b) * df / denom
	}

	eh := heightBracket(hKm, eHeight, eGreater, eLess, index)
	k4 := poly(hKm, eh) * poly(w.Kp, eKp[index][:])

	aFam := aHeightBracket(hKm, index)
	rho := 1.58868e-8 * math.Exp(poly(hKm, aFam))

	return rho * k0 * (1 + k1 + k2 + k3 + k4)
}

func aHeightBracket(h float64, index int) []float64 {
	if h < aHeight[index] {
		return aLess[index][:]
	}
	return aGreater[index][:]
}

// Density combines the static and dynamic models with the above-1500 km
// vacuum cutoff.
func Density(pos linalg.Vector3, hKm float64, dayOfYear int, subsolarLongitude, subsolarDeclination float64, w SpaceWeather) float64 {
	switch {
	case hKm > 1500:
		return 0
	case hKm < 120:
		return Static(hKm)
	default:
		return Dynamic(pos, hKm, dayOfYear, subsolarLongitude, subsolarDeclination, w)
	}
}
