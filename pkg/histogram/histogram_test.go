package histogram

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/syncgroove/golden/pkg/chronotype"
	"github.com/syncgroove/golden/pkg/golden"
)

func init() {
	// Deterministic output regardless of test terminal.
	color.NoColor = true
}

var ref = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func soloWindows(t *testing.T) []golden.OverlapWindow {
	t.Helper()
	e := golden.New()
	windows, err := e.FindAllOverlapWindows([]golden.Participant{
		{ID: "solo", Name: "Solo", Timezone: "UTC", Chrono: chronotype.Normal},
	}, ref)
	if err != nil {
		t.Fatal(err)
	}
	return windows
}

func TestTimeline(t *testing.T) {
	out := Timeline(soloWindows(t), "UTC", ref)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header (2) + 24 hours + footer (2).
	if len(lines) != 28 {
		t.Fatalf("got %d lines, want 28:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "00:00") {
		t.Errorf("first hour row = %q, want it to start at 00:00", lines[2])
	}
	// The 11:00 peak is all-available and excellent: starred.
	if !strings.Contains(out, "★") {
		t.Error("expected a starred excellent hour in the timeline")
	}
	// Overnight hours have nobody free.
	if !strings.Contains(lines[2], "z") {
		t.Errorf("midnight row %q should carry the nobody-free marker", lines[2])
	}
}

func TestTimelineLocalDisplay(t *testing.T) {
	out := Timeline(soloWindows(t), "Asia/Tokyo", ref)
	// UTC 00:00 displays as 09:00 Tokyo.
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[2], "09:00") {
		t.Errorf("first row = %q, want Tokyo wall clock 09:00", lines[2])
	}
}

func TestBestTimesRendering(t *testing.T) {
	e := golden.New()
	q := golden.DefaultQuery()
	q.ReferenceDate = ref
	slots, err := e.FindBestTimes([]golden.Participant{
		{ID: "solo", Name: "Solo", Timezone: "UTC", Chrono: chronotype.Normal},
	}, q)
	if err != nil {
		t.Fatal(err)
	}

	out := BestTimes(slots)
	if !strings.Contains(out, "1. ") {
		t.Errorf("output missing rank 1:\n%s", out)
	}
	if !strings.Contains(out, "Solo") {
		t.Error("output missing participant name")
	}

	if got := BestTimes(nil); !strings.Contains(got, "No golden window") {
		t.Errorf("empty slot list rendering = %q", got)
	}
}

func TestRangesRendering(t *testing.T) {
	out := Ranges([]golden.TimeRange{{StartHour: 9, EndHour: 13, DurationHours: 4, AvgQuality: 90}})
	if !strings.Contains(out, "09:00-13:00") || !strings.Contains(out, "4h") {
		t.Errorf("range rendering = %q", out)
	}

	if got := Ranges(nil); !strings.Contains(got, "No contiguous ranges") {
		t.Errorf("empty range rendering = %q", got)
	}
}
