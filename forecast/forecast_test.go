package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/anupshinde/astrofit/timeframe"
)

func instant(s string) timeframe.Instant {
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return timeframe.NewInstant(tt)
}

func linearDeriv(y []float64, _ timeframe.Instant) ([]float64, error) {
	// y' = v, v' = 0: a straight line, exactly reproduced by any degree
	// Lagrange polynomial regardless of sample spacing.
	return []float64{y[1], 0}, nil
}

func TestPointExactAtGridSample(t *testing.T) {
	t0 := instant("2024-01-01T00:00:00Z")
	t1 := t0.Add(100 * time.Second)
	fc, err := Run([]float64{0, 1}, t0, t1, 10*time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	grid, y := fc.Sample(3)
	got, err := fc.Point(grid, DefaultDegree)
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	for i := range y {
		if math.Abs(got[i]-y[i]) > 1e-9 {
			t.Errorf("Point at grid sample: got %v, want %v", got, y)
		}
	}
}

func TestPointLinearMotionExactBetweenSamples(t *testing.T) {
	t0 := instant("2024-01-01T00:00:00Z")
	t1 := t0.Add(100 * time.Second)
	fc, err := Run([]float64{0, 1}, t0, t1, 10*time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	mid := t0.Add(23500 * time.Millisecond)
	got, err := fc.Point(mid, DefaultDegree)
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	if math.Abs(got[0]-23.5) > 1e-6 {
		t.Errorf("Point = %v, want y[0] ~= 23.5", got)
	}
}

func TestPointOutOfRange(t *testing.T) {
	t0 := instant("2024-01-01T00:00:00Z")
	t1 := t0.Add(50 * time.Second)
	fc, err := Run([]float64{0, 1}, t0, t1, 10*time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := fc.Point(t0.Add(-time.Second), DefaultDegree); err == nil {
		t.Error("expected error for instant before forecast begin")
	}
	if _, err := fc.Point(t1.Add(time.Second), DefaultDegree); err == nil {
		t.Error("expected error for instant after forecast end")
	}
}

func TestSingleSampleForecastWhenTkEqualsTn(t *testing.T) {
	t0 := instant("2024-01-01T00:00:00Z")
	fc, err := Run([]float64{1, 2}, t0, t0, time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fc.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fc.Len())
	}
	got, err := fc.Point(t0, DefaultDegree)
	if err != nil {
		t.Fatalf("Point at t0: %v", err)
	}
	if got[0] != 1 || got[1] != 2 {
		t.Errorf("Point at t0 = %v, want the exact initial sample [1 2]", got)
	}
	if _, err := fc.Point(t0.Add(time.Second), DefaultDegree); err == nil {
		t.Error("expected error for instant beyond the single-sample span")
	}
}

func TestForecastCyclicAgreement(t *testing.T) {
	// forecast(state0, t2).point(t1) == forecast(state0, t1).point(t1).
	t0 := instant("2024-01-01T00:00:00Z")
	t1 := t0.Add(50 * time.Second)
	t2 := t0.Add(100 * time.Second)

	fc1, err := Run([]float64{0, 1}, t0, t1, 10*time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	fc2, err := Run([]float64{0, 1}, t0, t2, 10*time.Second, linearDeriv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	a, err := fc1.Point(t1, DefaultDegree)
	if err != nil {
		t.Fatalf("Point fc1: %v", err)
	}
	b, err := fc2.Point(t1, DefaultDegree)
	if err != nil {
		t.Fatalf("Point fc2: %v", err)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-6 {
			t.Errorf("cyclic agreement: fc1=%v fc2=%v", a, b)
		}
	}
}
