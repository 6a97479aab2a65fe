// Package measurement implements the angular measurement model: individual
// declination/right-ascension/brightness samples, the seance grouping them
// by observatory, and the measuring interval view used by the residual
// assembler.
package measurement

import (
	"fmt"
	"math"

	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/timeframe"
)

const twoPi = 2 * math.Pi

// M is a single angular measurement.
type M struct {
	T           timeframe.Instant
	Declination float64 // radians, [-pi/2, pi/2]
	Ascension   float64 // radians, canonicalized to [0, 2*pi)
	Brightness  float64 // stellar magnitude; informational only
}

// NewM builds a measurement, canonicalizing ascension into [0, 2*pi) so
// later residual computation can choose the signed-shortest wrap without
// re-normalizing first.
func NewM(t timeframe.Instant, declination, ascension, brightness float64) M {
	return M{T: t, Declination: declination, Ascension: wrapToTurn(ascension), Brightness: brightness}
}

func wrapToTurn(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// Seance is a contiguous set of measurements from one observatory.
type Seance struct {
	ID          string
	Observatory linalg.Vector3 // GRW Cartesian, constant across the seance
	Meas        []M
}

// NewSeance validates and builds a Seance: meas must be non-empty and
// strictly increasing in time.
func NewSeance(id string, observatory linalg.Vector3, meas []M) (*Seance, error) {
	if len(meas) == 0 {
		return nil, fmt.Errorf("measurement: seance %q has no measurements", id)
	}
	for i := 1; i < len(meas); i++ {
		if !meas[i].T.After(meas[i-1].T) {
			return nil, fmt.Errorf("measurement: seance %q measurements not strictly increasing at index %d", id, i)
		}
	}
	return &Seance{ID: id, Observatory: observatory, Meas: meas}, nil
}

// First returns the earliest measurement instant in the seance.
func (s *Seance) First() timeframe.Instant { return s.Meas[0].T }

// Last returns the latest measurement instant in the seance.
func (s *Seance) Last() timeframe.Instant { return s.Meas[len(s.Meas)-1].T }
