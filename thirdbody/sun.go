package thirdbody

import (
	"math"

	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/timeframe"
)

// SunMu is the Sun's gravitational parameter, m^3/s^2.
const SunMu = 1.32712440018e20

const arcsecPerTurn = 1296000.0

func arcsecToRad(sec float64) float64 {
	return sec * (2 * math.Pi / arcsecPerTurn)
}

// SunPosition returns the Sun's geocentric position in the ABS (inertial,
// J2000 mean equator/equinox) Cartesian frame at instant t, via a low-order
// analytic series in the mean and eccentric solar longitude, in Julian
// centuries since J2000.
func SunPosition(t timeframe.Instant) linalg.Vector3 {
	T := t.JC2000()

	L := arcsecToRad(1009677.85 + (100*arcsecPerTurn+2771.27+1.089*T)*T)
	lc := arcsecToRad(1018578.046 + (6190.046+(1.666+0.012*T)*T)*T)
	e := 0.0167086342 - (0.000004203654+(0.00000012673+0.00000000014*T)*T)*T
	ecl := arcsecToRad(84381.448 - (46.815+(0.00059-0.001813*T)*T)*T)
	omega := arcsecToRad(450160.280 - (5*arcsecPerTurn+482890.539-(7.455+0.008*T)*T)*T)
	psi := arcsecToRad(-17.1996 * math.Sin(omega))

	longitude := L + 2*e*math.Sin(L-lc) + 1.25*e*e*math.Sin(2*(L-lc))
	sinL, cosL := math.Sin(longitude), math.Cos(longitude)
	sinEcl, cosEcl := math.Sin(ecl), math.Cos(ecl)

	declination := math.Atan(sinL * sinEcl / math.Sqrt(cosL*cosL+sinL*sinL*cosEcl*cosEcl))
	rightAscension := math.Atan2(sinL*cosEcl, cosL)
	if rightAscension < 0 {
		rightAscension += 2 * math.Pi
	}

	cosLLc := math.Cos(L - lc)
	const auMeters = 1.4959787e11
	r := auMeters * (1 - e*(cosLLc-e*0.25*(1-cosLLc)))

	hi := arcsecToRad(20.49552)
	rightAscension += 0.061165*psi - hi
	declination += hi * sinEcl * cosL

	return timeframe.ABSSphericalToCartesian(timeframe.ABSSpherical{
		R: r, Declination: declination, RightAscension: rightAscension,
	})
}
