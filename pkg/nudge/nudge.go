// Package nudge decides whether a proposed meeting should be replaced with an
// asynchronous alternative. It is a stateless classifier: sacrifice
// aggregates and timezone spread go in, a recommendation with reasons and
// ranked alternatives comes out. Nothing is persisted between calls.
package nudge

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/syncgroove/golden/pkg/sacrifice"
)

// Purpose is the meeting's stated purpose.
type Purpose int

const (
	PurposeOther Purpose = iota
	PurposeStatusUpdate
	PurposeDecision
	PurposeBrainstorm
	PurposeOneOnOne
	PurposeSocial
)

// String returns the wire form of the purpose.
func (p Purpose) String() string {
	switch p {
	case PurposeStatusUpdate:
		return "status_update"
	case PurposeDecision:
		return "decision"
	case PurposeBrainstorm:
		return "brainstorm"
	case PurposeOneOnOne:
		return "one_on_one"
	case PurposeSocial:
		return "social"
	default:
		return "other"
	}
}

// ParsePurpose converts a wire-form purpose string.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "status_update":
		return PurposeStatusUpdate, nil
	case "decision":
		return PurposeDecision, nil
	case "brainstorm":
		return PurposeBrainstorm, nil
	case "one_on_one":
		return PurposeOneOnOne, nil
	case "social":
		return PurposeSocial, nil
	case "other", "":
		return PurposeOther, nil
	default:
		return PurposeOther, fmt.Errorf("unknown meeting purpose %q", s)
	}
}

// MarshalJSON encodes the purpose as its wire string.
func (p Purpose) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON decodes a wire string, rejecting unknown values.
func (p *Purpose) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePurpose(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MeetingUrgency is how urgent the caller says the meeting is.
type MeetingUrgency int

const (
	MeetingUrgencyNormal MeetingUrgency = iota
	MeetingUrgencyLow
	MeetingUrgencyHigh
)

// String returns the wire form of the meeting urgency.
func (u MeetingUrgency) String() string {
	switch u {
	case MeetingUrgencyLow:
		return "low"
	case MeetingUrgencyHigh:
		return "high"
	default:
		return "normal"
	}
}

// ParseMeetingUrgency converts a wire-form urgency string.
func ParseMeetingUrgency(s string) (MeetingUrgency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return MeetingUrgencyLow, nil
	case "normal", "":
		return MeetingUrgencyNormal, nil
	case "high":
		return MeetingUrgencyHigh, nil
	default:
		return MeetingUrgencyNormal, fmt.Errorf("unknown meeting urgency %q", s)
	}
}

// MarshalJSON encodes the urgency as its wire string.
func (u MeetingUrgency) MarshalJSON() ([]byte, error) { return json.Marshal(u.String()) }

// UnmarshalJSON decodes a wire string, rejecting unknown values.
func (u *MeetingUrgency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMeetingUrgency(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Urgency is how hard the nudge pushes.
type Urgency int

const (
	Mild Urgency = iota
	Moderate
	Strong
)

// String returns the wire form of the nudge urgency.
func (u Urgency) String() string {
	switch u {
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	default:
		return "mild"
	}
}

// MarshalJSON encodes the nudge urgency as its wire string.
func (u Urgency) MarshalJSON() ([]byte, error) { return json.Marshal(u.String()) }

// Reason is one fired trigger: why the classifier leans async.
type Reason struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`

	severity Urgency
}

// Input is everything the classifier looks at for one meeting-creation
// attempt. Aggregate may be nil when no candidate time has been scored yet;
// the spread triggers still apply.
type Input struct {
	SpreadHours     float64              `json:"spread_hours"`
	Aggregate       *sacrifice.Aggregate `json:"aggregate,omitempty"`
	Purpose         Purpose              `json:"purpose"`
	Urgency         MeetingUrgency       `json:"urgency"`
	DurationMinutes int                  `json:"duration_minutes"`
}

// Result is the classifier's recommendation.
type Result struct {
	ShouldNudge           bool          `json:"should_nudge"`
	Urgency               Urgency       `json:"urgency"`
	NudgeStrength         int           `json:"nudge_strength"` // 0-100
	Reasons               []Reason      `json:"reasons"`
	SuggestedAlternatives []Alternative `json:"suggested_alternatives"`
	Message               string        `json:"message"`
}

// Spread and sacrifice thresholds.
const (
	extremeSpreadHours = 10.0
	wideSpreadHours    = 8.0
	notableSpreadHours = 5.0

	highAvgSacrifice = 4.0
)

// Evaluate runs every trigger against the input and assembles the
// recommendation. Each trigger that fires contributes one reason; the overall
// urgency is the worst severity among fired triggers, and the strength is the
// capped sum of their weights.
func Evaluate(in Input) Result {
	var reasons []Reason

	switch {
	case in.SpreadHours > extremeSpreadHours:
		reasons = append(reasons, Reason{
			Code:        "extreme_spread",
			Description: fmt.Sprintf("Participants span %.1f hours of timezones; no hour is humane for everyone", in.SpreadHours),
			Weight:      40,
			severity:    Strong,
		})
	case in.SpreadHours > wideSpreadHours:
		reasons = append(reasons, Reason{
			Code:        "wide_spread",
			Description: fmt.Sprintf("Participants span %.1f hours of timezones; live overlap is thin", in.SpreadHours),
			Weight:      30,
			severity:    Moderate,
		})
	case in.SpreadHours >= notableSpreadHours && in.Urgency == MeetingUrgencyLow:
		reasons = append(reasons, Reason{
			Code:        "spread_low_urgency",
			Description: fmt.Sprintf("A %.1f-hour spread for a low-urgency meeting; async loses nothing", in.SpreadHours),
			Weight:      25,
			severity:    Moderate,
		})
	}

	if agg := in.Aggregate; agg != nil {
		if agg.AveragePoints > highAvgSacrifice {
			reasons = append(reasons, Reason{
				Code:        "high_sacrifice",
				Description: fmt.Sprintf("Average sacrifice is %.1f points per participant at the best candidate time", agg.AveragePoints),
				Weight:      25,
				severity:    Moderate,
			})
		}
		if agg.ImbalanceWarning {
			reasons = append(reasons, Reason{
				Code:        "unfair_burden",
				Description: fmt.Sprintf("One participant bears %.1fx the average cost", agg.FairnessIndex),
				Weight:      20,
				severity:    Moderate,
			})
		}
	}

	if in.Purpose == PurposeStatusUpdate && in.Urgency != MeetingUrgencyHigh {
		reasons = append(reasons, Reason{
			Code:        "async_friendly_purpose",
			Description: "Status updates rarely need everyone in a room at once",
			Weight:      20,
			severity:    Mild,
		})
	}

	// Stable presentation order: heaviest reason first, ties keep trigger order.
	sort.SliceStable(reasons, func(i, j int) bool { return reasons[i].Weight > reasons[j].Weight })

	strength := 0
	urgency := Mild
	for _, r := range reasons {
		strength += r.Weight
		if r.severity > urgency {
			urgency = r.severity
		}
	}
	if strength > 100 {
		strength = 100
	}

	result := Result{
		ShouldNudge:           len(reasons) > 0,
		Urgency:               urgency,
		NudgeStrength:         strength,
		Reasons:               reasons,
		SuggestedAlternatives: RankAlternatives(in.Purpose),
	}
	if result.ShouldNudge {
		result.Message = "Consider going async: " + reasons[0].Description + "."
	} else {
		result.Message = "A live meeting looks reasonable for this group."
	}
	return result
}
