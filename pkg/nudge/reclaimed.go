package nudge

import (
	"time"

	"github.com/google/uuid"
)

// Outcome records what happened after a nudge was shown.
type Outcome string

const (
	WentAsync   Outcome = "went_async"
	KeptMeeting Outcome = "kept_meeting"
	Cancelled   Outcome = "cancelled"
)

// DecisionRecord is one nudge outcome, as logged by the calling service.
type DecisionRecord struct {
	ID              uuid.UUID `json:"id"`
	Outcome         Outcome   `json:"outcome"`
	DurationMinutes int       `json:"duration_minutes"`
	AttendeeCount   int       `json:"attendee_count"`
	DecidedAt       time.Time `json:"decided_at"`
}

// NewDecisionRecord builds a record with a fresh id.
func NewDecisionRecord(outcome Outcome, durationMinutes, attendeeCount int, decidedAt time.Time) DecisionRecord {
	return DecisionRecord{
		ID:              uuid.New(),
		Outcome:         outcome,
		DurationMinutes: durationMinutes,
		AttendeeCount:   attendeeCount,
		DecidedAt:       decidedAt,
	}
}

// personHours is the meeting cost reclaimed by one async decision: duration
// times the people who would have attended. A missing attendee count still
// counts the meeting itself.
func (r DecisionRecord) personHours() float64 {
	attendees := r.AttendeeCount
	if attendees < 1 {
		attendees = 1
	}
	return float64(r.DurationMinutes) / 60.0 * float64(attendees)
}

// ReclaimedStats aggregates hours saved by went_async decisions over two
// periods. Pure aggregation, not a decision.
type ReclaimedStats struct {
	CurrentHours       float64 `json:"current_hours"`
	PreviousHours      float64 `json:"previous_hours"`
	CurrentAsyncCount  int     `json:"current_async_count"`
	PreviousAsyncCount int     `json:"previous_async_count"`

	// TrendPercent is the change from the previous period. A previous
	// period with no reclaimed hours has no baseline: the trend is defined
	// as 0, never NaN or infinity.
	TrendPercent float64 `json:"trend_percent"`
}

// CalculateReclaimedStats sums person-hours reclaimed by went_async decisions
// in each period and the percentage trend between them. Empty periods are a
// legitimate state, not an error.
func CalculateReclaimedStats(current, previous []DecisionRecord) ReclaimedStats {
	stats := ReclaimedStats{}

	for _, r := range current {
		if r.Outcome != WentAsync {
			continue
		}
		stats.CurrentHours += r.personHours()
		stats.CurrentAsyncCount++
	}
	for _, r := range previous {
		if r.Outcome != WentAsync {
			continue
		}
		stats.PreviousHours += r.personHours()
		stats.PreviousAsyncCount++
	}

	if stats.PreviousHours > 0 {
		stats.TrendPercent = (stats.CurrentHours - stats.PreviousHours) / stats.PreviousHours * 100
	}
	return stats
}
