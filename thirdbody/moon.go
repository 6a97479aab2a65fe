package thirdbody

import (
	"math"

	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/timeframe"
)

// MoonMu is the Moon's gravitational parameter, m^3/s^2.
const MoonMu = 4.9048695e12

// earthEquatorialRadiusM is the radius used by the Moon parallax-to-range
// conversion below; kept local rather than imported from harmonics.Table
// since the series is a self-contained analytic model.
const earthEquatorialRadiusM = 6378136.0

// MoonPosition returns the Moon's geocentric position in the ABS Cartesian
// frame at instant t, via a low-order ecliptic analytic series in the
// mean lunar anomaly, elongation, and argument of latitude.
func MoonPosition(t timeframe.Instant) linalg.Vector3 {
	T := t.JC2000()

	la := arcsecToRad(485866.733 + (1717915922.633+(31.31+0.064*T)*T)*T)
	sa := arcsecToRad(1287099.804 + (129596581.224-(0.577+0.012*T)*T)*T)
	f := arcsecToRad(335778.877 + (1739527263.137-(13.257-0.011*T)*T)*T)
	d := arcsecToRad(1072261.307 + (1602961601.328-(6.891-0.019*T)*T)*T)

	latitude := arcsecToRad(
		18461.48*math.Sin(f) +
			1010.18*math.Sin(la+f) -
			999.69*math.Sin(f-la) -
			623.65*math.Sin(f-2*d) +
			199.48*math.Sin(f+2*d-la) -
			166.57*math.Sin(la+f-2*d) +
			117.26*math.Sin(f+2*d) +
			61.91*math.Sin(2*la+f) -
			33.35*math.Sin(f-2*d-la) -
			31.76*math.Sin(f-2*la) -
			29.68*math.Sin(sa+f-2*d) +
			15.125*math.Sin(la+f+2*d) -
			15.56*math.Sin(2*(la-d)+f),
	)

	longitude := arcsecToRad(
		785939.157 + (1336*arcsecPerTurn+1108372.598+(5.802+0.019*T)*T)*T +
			22639.5*math.Sin(la) -
			4586.42*math.Sin(la-2*d) +
			2369.9*math.Sin(2*d) +
			769.01*math.Sin(2*la) -
			668.11*math.Sin(sa) -
			411.6*math.Sin(2*f) -
			211.65*math.Sin(2*(la-d)) -
			205.96*math.Sin(la+sa-2*d) +
			191.95*math.Sin(la+2*d) -
			165.14*math.Sin(sa-2*d) +
			147.69*math.Sin(la-sa) -
			125.15*math.Sin(d) -
			109.66*math.Sin(la+sa) -
			55.17*math.Sin(2*(f-d)) -
			45.1*math.Sin(sa+2*f) +
			39.53*math.Sin(la-2*f) -
			38.42*math.Sin(la-4*d) +
			36.12*math.Sin(3*la) -
			30.77*math.Sin(2*la-4*d) +
			28.47*math.Sin(la-sa-2*d) -
			24.42*math.Sin(sa+2*d) +
			18.6*math.Sin(la-d) +
			18.02*math.Sin(sa-d),
	)

	parallax := arcsecToRad(
		3422.7 +
			186.539*math.Cos(la) +
			34.311*math.Cos(la-2*d) +
			28.233*math.Cos(2*d) +
			10.165*math.Cos(2*la) +
			3.086*math.Cos(la+2*d) +
			1.92*math.Cos(sa-2*d) +
			1.445*math.Cos(la+sa-2*d) +
			1.154*math.Cos(la-sa) -
			0.975*math.Cos(d) -
			0.95*math.Cos(la+sa) -
			0.713*math.Cos(la-2*f) +
			0.6215*math.Cos(3*la) +
			0.601*math.Cos(la-4*d),
	)
	r := earthEquatorialRadiusM / parallax

	ecliptic := timeframe.ABSSphericalToCartesian(timeframe.ABSSpherical{
		R: r, Declination: latitude, RightAscension: longitude,
	})
	return timeframe.EclipticToABS(ecliptic)
}
