// Package srp implements the solar radiation pressure acceleration and its
// eclipse (shadow) coefficient.
package srp

import "github.com/anupshinde/astrofit/linalg"

const (
	sunRadiusM   = 6.957e8
	earthRadiusM = 6378137.0
)

// Shadow classifications returned alongside the numeric coefficient, for
// callers that want to branch on the regime rather than just scale by it.
const (
	Umbra    = 0.0
	Penumbra = 0.5
	Sunlit   = 1.0
)

// EclipseCoefficient returns the shadow coefficient (Umbra, Penumbra, or
// Sunlit) for a satellite at satPos given the Sun at sunPos, both in the
// same Cartesian frame centered on Earth. It transforms into a coordinate
// system whose axis points from the Sun through Earth's center (the shadow
// axis) and tests whether the satellite falls inside the umbra or penumbra
// cone at its along-axis distance, the same shadow-geometry construction
// used for lunar eclipse classification, here applied to a satellite
// instead of the Moon.
func EclipseCoefficient(satPos, sunPos linalg.Vector3) float64 {
	sunDist := sunPos.Norm()
	if sunDist == 0 {
		return Sunlit
	}
	axis := sunPos.Scale(-1 / sunDist) // points away from the Sun, through Earth

	dAlong := satPos.Dot(axis)
	if dAlong <= 0 {
		return Sunlit // satellite is on the sunward side of Earth
	}

	perp := satPos.Sub(axis.Scale(dAlong))
	sep := perp.Norm()

	rUmbra := earthRadiusM - dAlong*(sunRadiusM-earthRadiusM)/sunDist
	rPenumbra := earthRadiusM + dAlong*(sunRadiusM+earthRadiusM)/sunDist

	switch {
	case sep <= rUmbra:
		return Umbra
	case sep <= rPenumbra:
		return Penumbra
	default:
		return Sunlit
	}
}
