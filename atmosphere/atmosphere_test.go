package atmosphere

import (
	"testing"

	"github.com/anupshinde/astrofit/linalg"
)

func TestStaticDecreasesWithAltitude(t *testing.T) {
	rho0 := Static(0)
	rho50 := Static(50)
	rho110 := Static(110)
	if !(rho0 > rho50 && rho50 > rho110) {
		t.Errorf("density should decrease with altitude, got rho(0)=%v rho(50)=%v rho(110)=%v", rho0, rho50, rho110)
	}
	if rho0 <= 0 || rho110 <= 0 {
		t.Errorf("density must stay positive, got rho(0)=%v rho(110)=%v", rho0, rho110)
	}
}

func TestDensityZeroAbove1500km(t *testing.T) {
	pos := linalg.NewVector3(7000e3, 0, 0)
	rho := Density(pos, 1600, 100, 0, 0, SpaceWeather{F107: 150, F81: 150, Kp: 2})
	if rho != 0 {
		t.Errorf("Density above 1500km = %v, want 0", rho)
	}
}

func TestDensityUsesStaticBelow120km(t *testing.T) {
	pos := linalg.NewVector3(6478e3, 0, 0)
	rho := Density(pos, 80, 100, 0, 0, SpaceWeather{F107: 150, F81: 150, Kp: 2})
	want := Static(80)
	if rho != want {
		t.Errorf("Density(80km) = %v, want Static(80km) = %v", rho, want)
	}
}

func TestDynamicStaysPositiveAcrossRange(t *testing.T) {
	pos := linalg.NewVector3(7000e3, 1000e3, 500e3)
	w := SpaceWeather{F107: 140, F81: 130, Kp: 3}
	for _, h := range []float64{120, 300, 600, 900, 1200, 1500} {
		rho := Dynamic(pos, h, 180, 1.2, 0.3, w)
		if rho <= 0 {
			t.Errorf("Dynamic(%vkm) = %v, want > 0", h, rho)
		}
	}
}

func TestIsaBracketClampsOutOfRangeF81(t *testing.T) {
	idxLow, _ := isaBracket(10)
	if idxLow != 0 {
		t.Errorf("isaBracket(10) index = %d, want 0", idxLow)
	}
	idxHigh, f0 := isaBracket(500)
	if idxHigh != 6 || f0 != 250 {
		t.Errorf("isaBracket(500) = (%d,%v), want (6,250)", idxHigh, f0)
	}
}
