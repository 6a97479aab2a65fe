package srp

import "github.com/anupshinde/astrofit/linalg"

// SolarPressureAtAU is the solar radiation pressure at one astronomical
// unit, N/m^2.
const SolarPressureAtAU = 4.56e-6

// AU is one astronomical unit, metres.
const AU = 1.495978707e11

// Acceleration returns the solar radiation pressure acceleration on a
// satellite at satPos from the Sun at sunPos, scaled by the shadow
// coefficient eclipse (see EclipseCoefficient) and the effective
// reflectivity-weighted, mass-normalized cross-section coefficient
// (State7's seventh component, units m^2/kg):
//
//	a = -eclipse * pSun * AU^2 / |satPos-sunPos|^2 * coefficient * direction
//
// where direction is the unit vector from the Sun to the satellite.
func Acceleration(satPos, sunPos linalg.Vector3, coefficient, eclipse float64) linalg.Vector3 {
	offset := satPos.Sub(sunPos)
	d := offset.Norm()
	if d == 0 {
		return linalg.Vector3{}
	}
	direction := offset.Scale(1 / d)
	scale := -eclipse * SolarPressureAtAU * AU * AU / (d * d) * coefficient
	return direction.Scale(scale)
}
