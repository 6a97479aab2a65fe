// Package atmosphere implements the static and dynamic atmospheric density
// models and the space-weather inputs they consume.
package atmosphere

import "github.com/anupshinde/astrofit/timeframe"

// SpaceWeather carries the solar/geomagnetic activity indices the dynamic
// density model depends on at one instant.
type SpaceWeather struct {
	F107 float64 // daily observed 10.7 cm solar radio flux
	F81  float64 // 81-day centered smoothed F10.7
	Kp   float64 // planetary geomagnetic index
}

// Provider supplies the space-weather indices the dynamic atmosphere
// model consults. Ingestion of the underlying index series is the
// caller's concern; the core only ever calls this function.
type Provider func(t timeframe.Instant) SpaceWeather

// StaticProvider wraps a fixed SpaceWeather value as a Provider that
// ignores t, for short arcs or tests where the indices are effectively
// constant.
func StaticProvider(w SpaceWeather) Provider {
	return func(timeframe.Instant) SpaceWeather { return w }
}
