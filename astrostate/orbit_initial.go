package astrostate

import "github.com/anupshinde/astrofit/timeframe"

// OrbitInitial is an a-priori orbit sample consumed from a TLE-derived
// state or a prior solution: an epoch plus either a plain State6 or, when
// an SRP coefficient estimate is available, a State7.
type OrbitInitial struct {
	T  timeframe.Instant
	X6 State6
	S  *float64 // nil: State6 only; non-nil: State7 with this SRP coefficient
}

// NewOrbitInitial6 builds an OrbitInitial carrying only a State6.
func NewOrbitInitial6(t timeframe.Instant, x6 State6) OrbitInitial {
	return OrbitInitial{T: t, X6: x6}
}

// NewOrbitInitial7 builds an OrbitInitial carrying a State7.
func NewOrbitInitial7(t timeframe.Instant, x6 State6, s float64) OrbitInitial {
	return OrbitInitial{T: t, X6: x6, S: &s}
}

// HasSRP reports whether the sample includes an SRP coefficient.
func (o OrbitInitial) HasSRP() bool { return o.S != nil }

// AsState7 returns the sample as a State7, substituting fallback for the
// SRP coefficient if the sample did not carry one.
func (o OrbitInitial) AsState7(fallback float64) State7 {
	if o.S != nil {
		return State7{State6: o.X6, S: *o.S}
	}
	return State7{State6: o.X6, S: fallback}
}
