package thirdbody

import (
	"math"
	"testing"
	"time"

	"github.com/anupshinde/astrofit/linalg"
	"github.com/anupshinde/astrofit/timeframe"
)

func instant(s string) timeframe.Instant {
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return timeframe.NewInstant(tt)
}

func TestGravityAntiparallelToOffset(t *testing.T) {
	p := linalg.NewVector3(7000e3, 0, 0)
	m := linalg.NewVector3(1.5e11, 0, 0)
	a := Gravity(p, m, SunMu)

	// The satellite-relative term should dominate and point toward the Sun.
	if a.X <= 0 {
		t.Errorf("expected acceleration with positive X component toward the sun, got %v", a)
	}
}

func TestGravityJacobianMatchesFiniteDifference(t *testing.T) {
	p := linalg.NewVector3(7000e3, 1000e3, -500e3)
	m := linalg.NewVector3(1.5e11, 2e10, 0)

	_, jac := GravityJacobian(p, m, SunMu)

	const h = 1.0
	for axis := 0; axis < 3; axis++ {
		var d linalg.Vector3
		switch axis {
		case 0:
			d = linalg.NewVector3(h, 0, 0)
		case 1:
			d = linalg.NewVector3(0, h, 0)
		case 2:
			d = linalg.NewVector3(0, 0, h)
		}
		aPlus := Gravity(p.Add(d), m, SunMu)
		aMinus := Gravity(p.Sub(d), m, SunMu)
		fd := aPlus.Sub(aMinus).Scale(1 / (2 * h))

		col := linalg.NewVector3(jac.M[0][axis], jac.M[1][axis], jac.M[2][axis])
		if diff := col.Sub(fd).Norm(); diff > 1e-9 {
			t.Errorf("jacobian column %d = %v, finite-difference = %v (diff %v)", axis, col, fd, diff)
		}
	}
}

func TestSunPositionDistanceIsNearOneAU(t *testing.T) {
	pos := SunPosition(instant("2024-03-20T12:00:00Z"))
	const au = 1.4959787e11
	r := pos.Norm()
	if math.Abs(r-au)/au > 0.02 {
		t.Errorf("Sun distance = %v, want within 2%% of 1 AU (%v)", r, au)
	}
}

func TestMoonPositionDistanceIsPlausible(t *testing.T) {
	pos := MoonPosition(instant("2024-03-20T12:00:00Z"))
	r := pos.Norm()
	if r < 3.5e8 || r > 4.1e8 {
		t.Errorf("Moon distance = %v, want within 350e3-410e3 km", r)
	}
}

func TestMeanLunarNodeLongitudeInRange(t *testing.T) {
	lon := MeanLunarNodeLongitude(instant("2024-03-20T12:00:00Z"))
	if lon < 0 || lon >= 2*math.Pi {
		t.Errorf("MeanLunarNodeLongitude = %v, want in [0, 2*pi)", lon)
	}
}
