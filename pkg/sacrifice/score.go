// Package sacrifice quantifies how much inconvenience a meeting time imposes
// on a participant. The base cost is a fixed, research-tuned 24-entry table
// over the local hour; pain perception is categorical, so the table is the
// model, not an approximation of a smooth curve. It is deliberately a
// separate table from the chronotype sharpness curves: "how much this hurts"
// is not the inverse of "how alert I am".
package sacrifice

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/syncgroove/golden/pkg/tzconvert"
)

// basePainPoints maps local hour -> base pain points. Zero through standard
// work hours, climbing at the edges, severe overnight. Non-decreasing from
// 22:00 through 03:00 so pushing a meeting deeper into the night never reads
// as cheaper.
var basePainPoints = [24]float64{
	9, 10, 10, 10, 9, 8, // 00-05: deep night
	6, 3, 1, // 06-08: early morning
	0, 0, 0, 0, 0, 0, 0, 0, // 09-16: core work hours
	1, 2, 3, 4, 5, // 17-21: evening creep
	7, 8, // 22-23: overnight begins
}

// Category is the ordinal pain band a local hour falls into.
type Category int

const (
	AwakeFine Category = iota
	Inconvenient
	Bad
	Terrible
)

// Category band boundaries on base points.
const (
	awakeFineMax    = 1
	inconvenientMax = 3
	badMax          = 6
)

// String returns the wire form of the category.
func (c Category) String() string {
	switch c {
	case AwakeFine:
		return "awake_fine"
	case Inconvenient:
		return "inconvenient"
	case Bad:
		return "bad"
	case Terrible:
		return "terrible"
	default:
		return "awake_fine"
	}
}

// MarshalJSON encodes the category as its wire string.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Impact is the severity of the final (multiplied) points.
type Impact int

const (
	ImpactLow Impact = iota
	ImpactMedium
	ImpactHigh
	ImpactSevere
)

// String returns the wire form of the impact level.
func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	case ImpactHigh:
		return "high"
	case ImpactSevere:
		return "severe"
	default:
		return "low"
	}
}

// MarshalJSON encodes the impact as its wire string.
func (i Impact) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// Duration multiplier steps. Pain is threshold-based, not continuous: a
// 50-minute call does not hurt meaningfully more than a 45-minute one, but a
// second hour does.
const (
	shortMeetingMinutes = 45
	longMeetingMinutes  = 90

	mediumDurationMultiplier = 1.25
	longDurationMultiplier   = 1.5
	recurringMultiplier      = 1.5
	organizerMultiplier      = 0.5
)

// Options carries the meeting attributes that scale the base cost.
type Options struct {
	DurationMinutes  int     `json:"duration_minutes"`
	IsRecurring      bool    `json:"is_recurring"`
	IsOrganizer      bool    `json:"is_organizer"`
	CustomMultiplier float64 `json:"custom_multiplier,omitempty"` // <=0 means unset
}

// Multipliers is the breakdown of every factor applied to the base points.
type Multipliers struct {
	Duration  float64 `json:"duration"`
	Recurring float64 `json:"recurring"`
	Organizer float64 `json:"organizer"`
	Custom    float64 `json:"custom"`
	Total     float64 `json:"total"`
}

// Result is the sacrifice score for one participant at one candidate time.
// Computed fresh per call; never cached, since the options vary per meeting.
type Result struct {
	LocalHour   int         `json:"local_hour"`
	BasePoints  float64     `json:"base_points"`
	Points      float64     `json:"points"`
	Category    Category    `json:"category"`
	Impact      Impact      `json:"impact"`
	Multipliers Multipliers `json:"multipliers"`
	Breakdown   string      `json:"breakdown"`
}

// Score computes the sacrifice score for a local hour, timezone-agnostic.
func Score(localHour int, opts Options) Result {
	hour := ((localHour % 24) + 24) % 24
	base := basePainPoints[hour]

	m := multipliersFor(opts)
	points := base * m.Total

	r := Result{
		LocalHour:   hour,
		BasePoints:  base,
		Points:      points,
		Category:    categoryFor(base),
		Impact:      impactFor(points),
		Multipliers: m,
	}
	r.Breakdown = fmt.Sprintf(
		"base %.1f pts (local %02d:00, %s) x duration %.2f x recurring %.2f x organizer %.2f x custom %.2f = %.1f pts",
		base, hour, r.Category, m.Duration, m.Recurring, m.Organizer, m.Custom, points)
	return r
}

// ScoreForTimezone resolves the meeting instant to the participant's local
// hour and scores it. The timezone must be a valid IANA identifier.
func ScoreForTimezone(meetingUTC time.Time, timezone string, opts Options) (Result, error) {
	loc, err := tzconvert.Location(timezone)
	if err != nil {
		return Result{}, err
	}
	return Score(meetingUTC.In(loc).Hour(), opts), nil
}

func multipliersFor(opts Options) Multipliers {
	m := Multipliers{Duration: 1, Recurring: 1, Organizer: 1, Custom: 1}

	switch {
	case opts.DurationMinutes > longMeetingMinutes:
		m.Duration = longDurationMultiplier
	case opts.DurationMinutes > shortMeetingMinutes:
		m.Duration = mediumDurationMultiplier
	}
	if opts.IsRecurring {
		m.Recurring = recurringMultiplier
	}
	if opts.IsOrganizer {
		// Organizers chose the time; their pain counts for less.
		m.Organizer = organizerMultiplier
	}
	if opts.CustomMultiplier > 0 {
		m.Custom = opts.CustomMultiplier
	}

	m.Total = m.Duration * m.Recurring * m.Organizer * m.Custom
	return m
}

func categoryFor(basePoints float64) Category {
	switch {
	case basePoints <= awakeFineMax:
		return AwakeFine
	case basePoints <= inconvenientMax:
		return Inconvenient
	case basePoints <= badMax:
		return Bad
	default:
		return Terrible
	}
}

func impactFor(points float64) Impact {
	switch {
	case points < 2:
		return ImpactLow
	case points < 5:
		return ImpactMedium
	case points < 9:
		return ImpactHigh
	default:
		return ImpactSevere
	}
}
