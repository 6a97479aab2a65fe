package measurement

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

func TestNewMCanonicalizesAscension(t *testing.T) {
	m := NewM(instant("2024-01-01T00:00:00Z"), 0.1, -0.2, 5.0)
	if m.Ascension < 0 || m.Ascension >= 2*math.Pi {
		t.Errorf("Ascension = %v, want in [0, 2*pi)", m.Ascension)
	}
	want := 2*math.Pi - 0.2
	if math.Abs(m.Ascension-want) > 1e-12 {
		t.Errorf("Ascension = %v, want %v", m.Ascension, want)
	}
}

func TestNewSeanceRejectsEmpty(t *testing.T) {
	if _, err := NewSeance("obs1", linalg.Vector3{}, nil); err == nil {
		t.Fatal("expected error for empty measurement list")
	}
}

func TestNewSeanceRejectsNonIncreasing(t *testing.T) {
	meas := []M{
		NewM(instant("2024-01-01T00:00:02Z"), 0, 0, 5),
		NewM(instant("2024-01-01T00:00:01Z"), 0, 0, 5),
	}
	if _, err := NewSeance("obs1", linalg.Vector3{}, meas); err == nil {
		t.Fatal("expected error for non-increasing measurement times")
	}
}

func TestNewSeanceAcceptsSortedMeasurements(t *testing.T) {
	meas := []M{
		NewM(instant("2024-01-01T00:00:01Z"), 0, 0, 5),
		NewM(instant("2024-01-01T00:00:02Z"), 0, 0, 5),
	}
	s, err := NewSeance("obs1", linalg.Vector3{}, meas)
	if err != nil {
		t.Fatalf("NewSeance: %v", err)
	}
	if s.First() != meas[0].T || s.Last() != meas[1].T {
		t.Errorf("First/Last mismatch")
	}
}

func TestMeasuringIntervalSelectsWholeSeancesOnly(t *testing.T) {
	// A seance with even one measurement outside [begin, end] is dropped
	// entirely, not truncated.
	meas1 := []M{
		NewM(instant("2024-01-01T00:00:01Z"), 0, 0, 5),
		NewM(instant("2024-01-01T00:00:05Z"), 0, 0, 5),
	}
	meas2 := []M{
		NewM(instant("2024-01-01T00:00:03Z"), 0, 0, 5),
	}
	s1, _ := NewSeance("obs1", linalg.Vector3{}, meas1)
	s2, _ := NewSeance("obs2", linalg.Vector3{}, meas2)

	iv := NewMeasuringInterval([]*Seance{s1, s2},
		instant("2024-01-01T00:00:00Z"), instant("2024-01-01T00:00:04Z"))

	if got := iv.PointsCount(); got != 1 {
		t.Errorf("PointsCount = %d, want 1 (s1 wholly excluded, only s2 selected)", got)
	}

	var seen []string
	iv.ForEach(func(p Point) bool {
		seen = append(seen, p.Seance.ID)
		return true
	})
	if len(seen) != 1 || seen[0] != "obs2" {
		t.Errorf("ForEach visited %v, want [obs2]", seen)
	}
}

func TestMeasuringIntervalSelectsAllSeancesWithinWideInterval(t *testing.T) {
	meas1 := []M{
		NewM(instant("2024-01-01T00:00:01Z"), 0, 0, 5),
		NewM(instant("2024-01-01T00:00:05Z"), 0, 0, 5),
	}
	meas2 := []M{
		NewM(instant("2024-01-01T00:00:03Z"), 0, 0, 5),
	}
	s1, _ := NewSeance("obs1", linalg.Vector3{}, meas1)
	s2, _ := NewSeance("obs2", linalg.Vector3{}, meas2)

	iv := NewMeasuringInterval([]*Seance{s1, s2},
		instant("2024-01-01T00:00:00Z"), instant("2024-01-01T00:01:00Z"))

	if got := iv.PointsCount(); got != 3 {
		t.Errorf("PointsCount = %d, want 3", got)
	}
}
