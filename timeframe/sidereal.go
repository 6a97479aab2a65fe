package timeframe

import "math"

const (
	deg2rad = math.Pi / 180.0
	twoPi   = 2 * math.Pi
)

// SiderealTime returns the mean Greenwich sidereal time at t, in radians,
// using the IAU 1982 GMST polynomial (Meeus, ch. 12), expressed in
// radians for direct use as the GRW/ABS rotation angle.
func SiderealTime(t Instant) float64 {
	jd := t.JulianDate()
	du := jd - j2000JD
	T := du / 36525.0

	gmstDeg := 280.46061837 + 360.98564736629*du +
		0.000387933*T*T - T*T*T/38710000.0

	theta := math.Mod(gmstDeg*deg2rad, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}
