package golden

import (
	"fmt"
	"sort"
	"time"
)

// Recommendation thresholds on the golden score.
const (
	excellentThreshold = 80
	goodThreshold      = 60
	fairThreshold      = 40
)

// FindBestTimes turns the 24-hour scored timeline into a ranked, bounded
// result set. Windows are filtered by the query, sorted by golden score
// descending with ties broken by all-available first and then by lower UTC
// hour, and the top TopN get contiguous 1-based ranks. For fixed inputs the
// returned list is identical across calls, ranks included.
//
// Zero qualifying hours yield an empty slice and a nil error; deciding how to
// present "no golden window found" belongs to the caller.
func (e *Engine) FindBestTimes(participants []Participant, q Query) ([]BestTimeSlot, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if q.TopN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, q.TopN)
	}

	ref := q.ReferenceDate
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	q.ReferenceDate = ref

	valid, err := e.FindValidOverlapWindows(participants, q)
	if err != nil {
		return nil, err
	}

	sortWindows(valid)

	n := min(q.TopN, len(valid))
	slots := make([]BestTimeSlot, 0, n)
	for i := range n {
		w := valid[i]
		slots = append(slots, BestTimeSlot{
			OverlapWindow:  w,
			Rank:           i + 1,
			Recommendation: recommendationFor(w.GoldenScore),
			Summary:        summarize(w),
			StartTime:      time.Date(ref.Year(), ref.Month(), ref.Day(), w.UTCHour, 0, 0, 0, time.UTC),
		})
	}

	e.logger.Debug("ranked best times", "qualifying", len(valid), "returned", len(slots))
	return slots, nil
}

// sortWindows orders candidates for ranking: golden score descending, then
// all-available ahead of gapped slots, then the earlier UTC hour. The last
// two keys make the order fully deterministic and enforce the all-available
// dominance rule at equal scores.
func sortWindows(windows []OverlapWindow) {
	sort.Slice(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if a.GoldenScore != b.GoldenScore {
			return a.GoldenScore > b.GoldenScore
		}
		if a.AllAvailable != b.AllAvailable {
			return a.AllAvailable
		}
		return a.UTCHour < b.UTCHour
	})
}

func recommendationFor(goldenScore float64) string {
	switch {
	case goldenScore >= excellentThreshold:
		return RecommendationExcellent
	case goldenScore >= goodThreshold:
		return RecommendationGood
	case goldenScore >= fairThreshold:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}

func summarize(w OverlapWindow) string {
	total := len(w.Participants)
	if w.AllAvailable {
		return fmt.Sprintf("All %d participants available at %02d:00 UTC; quality %.0f/100 (%s)",
			total, w.UTCHour, w.QualityScore, recommendationFor(w.GoldenScore))
	}
	return fmt.Sprintf("%d of %d participants available at %02d:00 UTC; quality %.0f/100 (%s)",
		w.AvailableCount, total, w.UTCHour, w.QualityScore, recommendationFor(w.GoldenScore))
}

// FindBestTimeRanges merges strictly consecutive qualifying UTC hours into
// contiguous ranges. A single isolated qualifying hour is a range of length 1.
// Ranges come back ordered by descending average quality, ties by earlier
// start hour. Hour 23 and hour 0 are not adjacent: the timeline is one
// reference date, not a ring.
func (e *Engine) FindBestTimeRanges(participants []Participant, q Query) ([]TimeRange, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	valid, err := e.FindValidOverlapWindows(participants, q)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return []TimeRange{}, nil
	}

	// FindValidOverlapWindows returns windows in UTC-hour order already.
	var ranges []TimeRange
	run := []OverlapWindow{valid[0]}
	for _, w := range valid[1:] {
		if w.UTCHour == run[len(run)-1].UTCHour+1 {
			run = append(run, w)
			continue
		}
		ranges = append(ranges, buildRange(run))
		run = []OverlapWindow{w}
	}
	ranges = append(ranges, buildRange(run))

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].AvgQuality != ranges[j].AvgQuality {
			return ranges[i].AvgQuality > ranges[j].AvgQuality
		}
		return ranges[i].StartHour < ranges[j].StartHour
	})
	return ranges, nil
}

func buildRange(run []OverlapWindow) TimeRange {
	sum := 0.0
	allAvailable := true
	for _, w := range run {
		sum += w.QualityScore
		if !w.AllAvailable {
			allAvailable = false
		}
	}
	return TimeRange{
		StartHour:     run[0].UTCHour,
		EndHour:       run[len(run)-1].UTCHour + 1,
		DurationHours: len(run),
		AvgQuality:    sum / float64(len(run)),
		AllAvailable:  allAvailable,
	}
}
