package motion

import (
	"fmt"

	"github.com/anupshinde/astrofit/timeframe"
)

// HeightOutOfBoundsError is returned by every right-hand-side evaluation
// whose altitude above the WGS ellipsoid falls outside [HMin, HMax]. It is
// fatal to the integration step that raised it; a solver's damping search
// may catch it to invalidate that trial point rather than abort the whole
// iteration.
type HeightOutOfBoundsError struct {
	HeightM float64
	T       timeframe.Instant
	HMin    float64
	HMax    float64
}

func (e *HeightOutOfBoundsError) Error() string {
	return fmt.Sprintf("motion: altitude %.1fm at %v outside bounds [%.1f, %.1f]",
		e.HeightM, e.T.Time(), e.HMin, e.HMax)
}
