package golden

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/syncgroove/golden/pkg/chronotype"
	"github.com/syncgroove/golden/pkg/tzconvert"
)

// No-DST-edge reference date used throughout.
var winterRef = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

// globalTrio is the canonical hard case: LA, London and Tokyo with default
// 9-17 work hours. There is no hour where all three are inside their windows.
func globalTrio() []Participant {
	return []Participant{
		{ID: "ana", Timezone: "America/Los_Angeles", Chrono: chronotype.Normal},
		{ID: "ben", Timezone: "Europe/London", Chrono: chronotype.Normal},
		{ID: "chi", Timezone: "Asia/Tokyo", Chrono: chronotype.Normal},
	}
}

func TestCalculateOverlapWindowLocalHours(t *testing.T) {
	e := New()

	// UTC 17:00 in winter: 09:00 LA, 17:00 London, 02:00 Tokyo. The local
	// hours are computed through the temporal model, not assumed.
	w, err := e.CalculateOverlapWindow(17, globalTrio(), winterRef)
	if err != nil {
		t.Fatal(err)
	}

	wantLocal := map[string]int{"ana": 9, "ben": 17, "chi": 2}
	wantAvail := map[string]bool{"ana": true, "ben": false, "chi": false}
	for _, pw := range w.Participants {
		localHour, err := tzconvert.UTCHourToLocal(17, pw.Timezone, winterRef)
		if err != nil {
			t.Fatal(err)
		}
		if pw.LocalHour != localHour {
			t.Errorf("%s: window local hour %d != temporal model %d", pw.ParticipantID, pw.LocalHour, localHour)
		}
		if pw.LocalHour != wantLocal[pw.ParticipantID] {
			t.Errorf("%s: local hour = %d, want %d", pw.ParticipantID, pw.LocalHour, wantLocal[pw.ParticipantID])
		}
		if pw.IsAvailable != wantAvail[pw.ParticipantID] {
			t.Errorf("%s: available = %v, want %v", pw.ParticipantID, pw.IsAvailable, wantAvail[pw.ParticipantID])
		}
	}

	// London is at her end hour (17, excluded) and Tokyo is at 02:00, so
	// this is not an all-available window.
	if w.AllAvailable {
		t.Error("UTC 17 must not be all-available for the LA/London/Tokyo trio")
	}
	if w.AvailableCount != 1 {
		t.Errorf("available count = %d, want 1", w.AvailableCount)
	}
}

func TestGlobalTrioHasNoAllAvailableHour(t *testing.T) {
	e := New()

	windows, err := e.FindAllOverlapWindows(globalTrio(), winterRef)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 24 {
		t.Fatalf("got %d windows, want 24", len(windows))
	}

	for _, w := range windows {
		if w.AllAvailable {
			t.Errorf("UTC hour %d reported all-available; a 17-hour spread with 9-17 windows has no full overlap", w.UTCHour)
		}
	}
}

func TestQualityScoreWeightsUnavailableAsZero(t *testing.T) {
	e := New()

	// Both in UTC with flat custom curves; ben blocks out hour 10.
	participants := []Participant{
		{
			ID: "ana", Timezone: "UTC", Chrono: chronotype.Custom,
			EnergyCurve:      map[int]float64{10: 1.0},
			UnavailableHours: []int{},
		},
		{
			ID: "ben", Timezone: "UTC", Chrono: chronotype.Custom,
			EnergyCurve:      map[int]float64{10: 1.0},
			UnavailableHours: []int{10},
		},
	}

	w, err := e.CalculateOverlapWindow(10, participants, winterRef)
	if err != nil {
		t.Fatal(err)
	}

	// ben contributes zero sharpness but stays in the denominator:
	// (1.0 + 0) / 2 * 100 = 50, not 100.
	if math.Abs(w.QualityScore-50) > 0.01 {
		t.Errorf("quality score = %v, want 50 (gap must stay visible)", w.QualityScore)
	}
	if w.AllAvailable {
		t.Error("window with a blocked participant reported all-available")
	}
	// No boost without full availability.
	if w.GoldenScore != w.QualityScore {
		t.Errorf("golden score %v != quality %v for non-all-available window", w.GoldenScore, w.QualityScore)
	}
}

func TestGoldenScoreBoost(t *testing.T) {
	e := New()

	participants := []Participant{
		{
			ID: "ana", Timezone: "UTC", Chrono: chronotype.Custom,
			EnergyCurve:      map[int]float64{10: 0.5, 11: 1.0},
			UnavailableHours: []int{},
		},
	}

	w, err := e.CalculateOverlapWindow(10, participants, winterRef)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w.GoldenScore-55) > 0.01 {
		t.Errorf("boosted golden score = %v, want 50 * 1.1 = 55", w.GoldenScore)
	}

	// The boost caps at 100.
	w, err = e.CalculateOverlapWindow(11, participants, winterRef)
	if err != nil {
		t.Fatal(err)
	}
	if w.GoldenScore != 100 {
		t.Errorf("capped golden score = %v, want 100", w.GoldenScore)
	}
}

func TestOverlapRejectsEmptyParticipants(t *testing.T) {
	e := New()

	if _, err := e.CalculateOverlapWindow(10, nil, winterRef); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("CalculateOverlapWindow(nil): err = %v, want ErrNoParticipants", err)
	}
	if _, err := e.FindAllOverlapWindows([]Participant{}, winterRef); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("FindAllOverlapWindows(empty): err = %v, want ErrNoParticipants", err)
	}
}

func TestOverlapRejectsUnknownTimezone(t *testing.T) {
	e := New()

	participants := []Participant{{ID: "ghost", Timezone: "Atlantis/Capital", Chrono: chronotype.Normal}}
	if _, err := e.CalculateOverlapWindow(10, participants, winterRef); !errors.Is(err, tzconvert.ErrUnknownTimezone) {
		t.Errorf("expected ErrUnknownTimezone, got %v", err)
	}
}

func TestFindValidOverlapWindowsPolicies(t *testing.T) {
	e := New()
	trio := globalTrio()

	// All-available policy: the trio never fully overlaps.
	q := DefaultQuery()
	q.ReferenceDate = winterRef
	valid, err := e.FindValidOverlapWindows(trio, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(valid) != 0 {
		t.Errorf("got %d all-available windows, want 0", len(valid))
	}

	// Relaxed policy: at least 2 of 3 available.
	q.RequireAllAvailable = false
	q.MinAvailable = 2
	valid, err = e.FindValidOverlapWindows(trio, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(valid) == 0 {
		t.Fatal("expected some windows with >=2 participants available")
	}
	for _, w := range valid {
		if w.AvailableCount < 2 {
			t.Errorf("UTC %d: available count %d below policy floor 2", w.UTCHour, w.AvailableCount)
		}
	}
}

func TestHourProfileHalfOpenWorkWindow(t *testing.T) {
	p := Participant{
		ID: "ana", Timezone: "UTC", Chrono: chronotype.Normal,
		UnavailableHours: []int{}, // isolate the window law from asleep hours
	}

	if !p.ProfileAt(9).IsAvailable {
		t.Error("hour 9 must be available with the default [9,17) window")
	}
	if p.ProfileAt(17).IsAvailable {
		t.Error("hour 17 must never be available with the default [9,17) window")
	}
}

func TestParticipantDefaultsToChronotypeAsleepHours(t *testing.T) {
	// Night owl with an overnight work window: chronotype-default asleep
	// hours (02:00-09:00) mask the early part of the window.
	p := Participant{
		ID: "owl", Timezone: "UTC", Chrono: chronotype.NightOwl,
		WorkStartHour: intPtr(1), WorkEndHour: intPtr(9),
	}

	if p.ProfileAt(1).IsAvailable != true {
		t.Error("hour 1 is in-window and before the owl's asleep band")
	}
	if p.ProfileAt(3).IsAvailable {
		t.Error("hour 3 falls in the night owl's default asleep hours")
	}
}
