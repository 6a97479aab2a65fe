package thirdbody

import (
	"math"

	"github.com/anupshinde/astrofit/timeframe"
)

// MeanLunarNodeLongitude returns the mean ecliptic longitude (radians, in
// [0, 2*pi)) of the Moon's ascending node at instant t. It is a coarser
// companion to the node-longitude term folded into MoonPosition's own
// series (the argument of latitude f there already carries the node's
// precession); this standalone form gives the node longitude on its own.
// No other package in this module calls it.
func MeanLunarNodeLongitude(t timeframe.Instant) float64 {
	T := t.JC2000()
	omegaDeg := 125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000.0
	omegaDeg = math.Mod(omegaDeg, 360.0)
	if omegaDeg < 0 {
		omegaDeg += 360.0
	}
	return omegaDeg * math.Pi / 180.0
}
