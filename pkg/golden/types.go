package golden

import (
	"errors"
	"time"

	"github.com/syncgroove/golden/pkg/availability"
	"github.com/syncgroove/golden/pkg/chronotype"
)

// Validation errors. Callers can match with errors.Is.
var (
	// ErrNoParticipants is returned when a computation is asked to score an
	// empty participant list. There is no meaningful overlap of nobody.
	ErrNoParticipants = errors.New("participant list is empty")
	// ErrInvalidTopN is returned when a query asks for a non-positive number
	// of results.
	ErrInvalidTopN = errors.New("top_n must be a positive integer")
)

// Participant is one attendee in a candidate meeting. It is an immutable
// snapshot for the duration of a computation; the engine only ever reads it.
type Participant struct {
	ID       string                `json:"id"`
	Name     string                `json:"name,omitempty"`
	Email    string                `json:"email,omitempty"`
	Timezone string                `json:"timezone"`
	Chrono   chronotype.Chronotype `json:"chronotype"`

	// EnergyCurve is an optional partial local-hour -> sharpness mapping for
	// Custom chronotypes. Hours not present fall back to the normal curve.
	EnergyCurve map[int]float64 `json:"energy_curve,omitempty"`

	// UnavailableHours are explicit local hours the participant will not
	// meet. When nil, the chronotype's default asleep hours apply instead.
	UnavailableHours []int `json:"unavailable_hours,omitempty"`

	// WorkStartHour/WorkEndHour define the local work window [start,end).
	// Both nil means the default 9-17 window.
	WorkStartHour *int `json:"work_start_hour,omitempty"`
	WorkEndHour   *int `json:"work_end_hour,omitempty"`
}

// WorkWindow resolves the participant's half-open work-hour window,
// defaulting to 9-17 local.
func (p *Participant) WorkWindow() availability.Window {
	w := availability.DefaultWindow
	if p.WorkStartHour != nil {
		w.StartHour = *p.WorkStartHour
	}
	if p.WorkEndHour != nil {
		w.EndHour = *p.WorkEndHour
	}
	return w
}

// unavailableSet resolves the explicit unavailable hours, or the chronotype's
// default asleep hours when none were supplied.
func (p *Participant) unavailableSet() map[int]bool {
	if p.UnavailableHours == nil {
		return chronotype.DefaultAsleepHours(p.Chrono)
	}
	set := make(map[int]bool, len(p.UnavailableHours))
	for _, h := range p.UnavailableHours {
		set[((h%24)+24)%24] = true
	}
	return set
}

// HourProfile is a participant's state at one local hour: how sharp they are
// and whether they can meet at all. Derived on demand, never persisted.
type HourProfile struct {
	Sharpness   float64 `json:"sharpness"`
	IsAvailable bool    `json:"is_available"`
}

// ProfileAt computes the participant's hour profile for a local hour.
func (p *Participant) ProfileAt(localHour int) HourProfile {
	return HourProfile{
		Sharpness:   chronotype.Sharpness(p.Chrono, p.EnergyCurve, localHour),
		IsAvailable: availability.IsHourAvailable(localHour, p.WorkWindow(), p.unavailableSet()),
	}
}

// ParticipantWindow pairs a participant with their local hour and hour
// profile at a specific UTC hour under consideration.
type ParticipantWindow struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name,omitempty"`
	Timezone      string  `json:"timezone"`
	LocalHour     int     `json:"local_hour"`
	Sharpness     float64 `json:"sharpness"`
	IsAvailable   bool    `json:"is_available"`
}

// OverlapWindow is one candidate meeting hour, expressed in UTC, with the
// per-participant breakdown that produced its scores. Never mutated after
// creation.
type OverlapWindow struct {
	UTCHour        int                 `json:"utc_hour"`
	Participants   []ParticipantWindow `json:"participants"`
	AllAvailable   bool                `json:"all_available"`
	AvailableCount int                 `json:"available_count"`

	// QualityScore is 0-100: mean sharpness across the full participant set
	// with unavailable participants contributing zero, so availability gaps
	// stay visible in the score.
	QualityScore float64 `json:"quality_score"`

	// GoldenScore is the ranking metric: the quality score, boosted when
	// every participant is available.
	GoldenScore float64 `json:"golden_score"`
}

// Recommendation labels for ranked slots, derived from fixed golden-score
// thresholds.
const (
	RecommendationExcellent = "excellent"
	RecommendationGood      = "good"
	RecommendationFair      = "fair"
	RecommendationPoor      = "poor"
)

// BestTimeSlot is a ranked, annotated overlap window.
type BestTimeSlot struct {
	OverlapWindow

	// Rank is 1-based and contiguous within a returned list.
	Rank           int       `json:"rank"`
	Recommendation string    `json:"recommendation"`
	Summary        string    `json:"summary"`
	StartTime      time.Time `json:"start_time"`
}

// TimeRange is a contiguous run of qualifying UTC hours. EndHour is
// exclusive, matching the half-open convention used everywhere else: a range
// covering only hour 14 has StartHour 14, EndHour 15, DurationHours 1.
type TimeRange struct {
	StartHour     int     `json:"start_hour"`
	EndHour       int     `json:"end_hour"`
	DurationHours int     `json:"duration_hours"`
	AvgQuality    float64 `json:"avg_quality"`
	AllAvailable  bool    `json:"all_available"`
}

// Query holds the knobs for best-time searches. Use DefaultQuery and override
// fields rather than building from a zero value: a zero TopN is rejected, not
// silently defaulted, so caller bugs surface.
type Query struct {
	TopN                int
	RequireAllAvailable bool
	MinQualityScore     float64
	MinAvailable        int // used when RequireAllAvailable is false; 0 means no floor

	// ReferenceDate resolves DST-correct offsets. Zero means today (UTC).
	ReferenceDate time.Time
}

// DefaultQuery returns the documented defaults: top 5, all participants
// required, no quality floor.
func DefaultQuery() Query {
	return Query{
		TopN:                5,
		RequireAllAvailable: true,
		MinQualityScore:     0,
	}
}

// HeatmapCell is one participant's profile at one UTC hour.
type HeatmapCell struct {
	ParticipantID string  `json:"participant_id"`
	LocalHour     int     `json:"local_hour"`
	Sharpness     float64 `json:"sharpness"`
	IsAvailable   bool    `json:"is_available"`
}

// HeatmapRow is one UTC hour across all participants, plus the combined
// scores for that hour.
type HeatmapRow struct {
	UTCHour      int           `json:"utc_hour"`
	Cells        []HeatmapCell `json:"cells"`
	QualityScore float64       `json:"quality_score"`
	GoldenScore  float64       `json:"golden_score"`
	AllAvailable bool          `json:"all_available"`
}

// HeatmapData is the 24 x N visualization projection of the same per-hour
// computation the overlap engine runs. Not a separate algorithm.
type HeatmapData struct {
	ParticipantIDs []string       `json:"participant_ids"`
	Rows           [24]HeatmapRow `json:"rows"`
}
