// Package timeframe provides the scalar instant representation, sidereal
// time, and the closed set of named frame transforms: (ABS, GRW) x
// (ORT, SPH) plus an ecliptic frame.
package timeframe

import "time"

// Instant is an absolute point in time with millisecond resolution.
// It wraps time.Time, which already gives
// total ordering and Sub/Add arithmetic for free; Instant exists as a
// distinct type so the rest of astrofit never has to reason about
// monotonic-clock reset or local-time issues that a bare time.Time invites.
type Instant struct {
	t time.Time
}

// NewInstant builds an Instant from a time.Time, rounded to the nearest
// millisecond.
func NewInstant(t time.Time) Instant {
	return Instant{t: t.Round(time.Millisecond)}
}

// Sub returns the duration d = a - b.
func (a Instant) Sub(b Instant) time.Duration {
	return a.t.Sub(b.t)
}

// Add returns a + d.
func (a Instant) Add(d time.Duration) Instant {
	return Instant{t: a.t.Add(d)}
}

// Before reports whether a is strictly before b.
func (a Instant) Before(b Instant) bool { return a.t.Before(b.t) }

// After reports whether a is strictly after b.
func (a Instant) After(b Instant) bool { return a.t.After(b.t) }

// Equal reports whether a and b represent the same instant.
func (a Instant) Equal(b Instant) bool { return a.t.Equal(b.t) }

// Time returns the underlying time.Time (UTC).
func (a Instant) Time() time.Time { return a.t.UTC() }

const j2000JD = 2451545.0
const secPerDay = 86400.0

// julianDate returns the UTC-based Julian date of a.
func (a Instant) julianDate() float64 {
	unix := a.t.UTC()
	days := float64(unix.Unix()) / secPerDay
	days += float64(unix.Nanosecond()) / 1e9 / secPerDay
	// Unix epoch 1970-01-01T00:00:00 UTC is JD 2440587.5.
	return 2440587.5 + days
}

// JC2000 returns the number of Julian centuries elapsed since the J2000.0
// epoch (JD 2451545.0), the independent variable for every analytic series
// in the force model (nutation-free sidereal time, Sun/Moon position,
// geopotential-adjacent constants).
func (a Instant) JC2000() float64 {
	return (a.julianDate() - j2000JD) / 36525.0
}

// JulianDate returns the Julian date of a. UTC-based: the core treats
// UT1 and UTC as interchangeable, consistent with its tens-of-metres
// accuracy target.
func (a Instant) JulianDate() float64 { return a.julianDate() }
