package nudge

import (
	"encoding/json"
	"sort"
)

// AlternativeType is a closed enumeration of async meeting replacements.
type AlternativeType int

const (
	Loom AlternativeType = iota
	Doc
	Poll
	Email
	Slack
	// Other exists for callers recording decisions that landed outside the
	// suggested set; it is never itself suggested.
	Other
)

// String returns the wire form of the alternative type.
func (t AlternativeType) String() string {
	switch t {
	case Loom:
		return "loom"
	case Doc:
		return "doc"
	case Poll:
		return "poll"
	case Email:
		return "email"
	case Slack:
		return "slack"
	default:
		return "other"
	}
}

// MarshalJSON encodes the alternative type as its wire string.
func (t AlternativeType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// Alternative is one async option with its fit for the meeting at hand.
type Alternative struct {
	Type        AlternativeType `json:"type"`
	Name        string          `json:"name"`
	BestFor     string          `json:"best_for"`
	Suitability float64         `json:"suitability"` // 0-100
}

var alternativeNames = map[AlternativeType]struct {
	name    string
	bestFor string
}{
	Loom:  {"Recorded video", "Demos and status walkthroughs people can watch at 2x on their own clock"},
	Doc:   {"Shared document", "Proposals and decisions that benefit from written context and inline comments"},
	Poll:  {"Async poll", "Narrowing options or confirming a decision without a discussion"},
	Email: {"Email thread", "Formal updates and anything that needs a paper trail"},
	Slack: {"Chat thread", "Quick questions and low-stakes coordination"},
}

// suitabilityByPurpose scores each concrete alternative per meeting purpose.
// Decision-heavy meetings favor doc/poll; status updates favor recorded
// video. Always five entries per purpose.
var suitabilityByPurpose = map[Purpose]map[AlternativeType]float64{
	PurposeStatusUpdate: {Loom: 95, Doc: 75, Email: 65, Slack: 60, Poll: 30},
	PurposeDecision:     {Doc: 90, Poll: 85, Slack: 55, Email: 50, Loom: 30},
	PurposeBrainstorm:   {Doc: 85, Slack: 70, Poll: 60, Loom: 45, Email: 35},
	PurposeOneOnOne:     {Slack: 75, Email: 60, Loom: 55, Doc: 40, Poll: 20},
	PurposeSocial:       {Slack: 80, Email: 45, Poll: 40, Loom: 35, Doc: 25},
	PurposeOther:        {Doc: 70, Slack: 65, Email: 55, Loom: 50, Poll: 45},
}

// RankAlternatives returns all five concrete alternative types ordered by
// descending suitability for the purpose, ties broken by enum order. The
// list always has exactly five entries so a caller can render a full
// comparison.
func RankAlternatives(purpose Purpose) []Alternative {
	scores, ok := suitabilityByPurpose[purpose]
	if !ok {
		scores = suitabilityByPurpose[PurposeOther]
	}

	alternatives := make([]Alternative, 0, len(alternativeNames))
	for _, t := range []AlternativeType{Loom, Doc, Poll, Email, Slack} {
		meta := alternativeNames[t]
		alternatives = append(alternatives, Alternative{
			Type:        t,
			Name:        meta.name,
			BestFor:     meta.bestFor,
			Suitability: scores[t],
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		if alternatives[i].Suitability != alternatives[j].Suitability {
			return alternatives[i].Suitability > alternatives[j].Suitability
		}
		return alternatives[i].Type < alternatives[j].Type
	})
	return alternatives
}
