package nudge

import (
	"testing"

	"github.com/syncgroove/golden/pkg/sacrifice"
)

func TestEvaluateExtremeSpread(t *testing.T) {
	// 14-hour spread: must nudge strongly and carry a full alternative list.
	result := Evaluate(Input{SpreadHours: 14, Purpose: PurposeDecision, Urgency: MeetingUrgencyNormal})

	if !result.ShouldNudge {
		t.Fatal("14-hour spread must nudge")
	}
	if result.Urgency != Strong {
		t.Errorf("urgency = %s, want strong", result.Urgency)
	}
	if len(result.SuggestedAlternatives) != 5 {
		t.Fatalf("got %d alternatives, want exactly 5", len(result.SuggestedAlternatives))
	}

	seen := map[AlternativeType]bool{}
	for _, alt := range result.SuggestedAlternatives {
		seen[alt.Type] = true
	}
	for _, want := range []AlternativeType{Loom, Doc, Poll, Email, Slack} {
		if !seen[want] {
			t.Errorf("alternative %s missing from suggestions", want)
		}
	}

	if len(result.Reasons) == 0 || result.Reasons[0].Code != "extreme_spread" {
		t.Errorf("reasons = %+v, want extreme_spread first", result.Reasons)
	}
	if result.Message == "" {
		t.Error("message must be populated")
	}
}

func TestEvaluateSpreadThresholds(t *testing.T) {
	tests := []struct {
		name        string
		spread      float64
		urgency     MeetingUrgency
		shouldNudge bool
		nudgeLevel  Urgency
	}{
		{"over 10h is strong", 10.5, MeetingUrgencyNormal, true, Strong},
		{"over 8h is moderate", 9, MeetingUrgencyNormal, true, Moderate},
		{"small spread, normal urgency: no nudge", 5, MeetingUrgencyNormal, false, Mild},
		{"small spread with low urgency still nudges", 5, MeetingUrgencyLow, true, Moderate},
		{"colocated team: no nudge", 0, MeetingUrgencyNormal, false, Mild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(Input{SpreadHours: tt.spread, Purpose: PurposeDecision, Urgency: tt.urgency})
			if result.ShouldNudge != tt.shouldNudge {
				t.Errorf("shouldNudge = %v, want %v", result.ShouldNudge, tt.shouldNudge)
			}
			if result.ShouldNudge && result.Urgency != tt.nudgeLevel {
				t.Errorf("urgency = %s, want %s", result.Urgency, tt.nudgeLevel)
			}
			if !result.ShouldNudge && result.NudgeStrength != 0 {
				t.Errorf("no triggers but strength = %d", result.NudgeStrength)
			}
		})
	}
}

func TestEvaluateSacrificeTriggers(t *testing.T) {
	agg := &sacrifice.Aggregate{
		TotalPoints:      18,
		AveragePoints:    6,
		MaxPoints:        15,
		FairnessIndex:    2.5,
		ImbalanceWarning: true,
	}

	result := Evaluate(Input{SpreadHours: 2, Aggregate: agg, Purpose: PurposeDecision})
	if !result.ShouldNudge {
		t.Fatal("high sacrifice must nudge even with a small spread")
	}

	codes := map[string]bool{}
	for _, r := range result.Reasons {
		codes[r.Code] = true
	}
	if !codes["high_sacrifice"] {
		t.Error("expected high_sacrifice reason")
	}
	if !codes["unfair_burden"] {
		t.Error("expected unfair_burden reason")
	}
	if result.Urgency != Moderate {
		t.Errorf("urgency = %s, want moderate", result.Urgency)
	}
}

func TestEvaluateStatusUpdatePurpose(t *testing.T) {
	result := Evaluate(Input{SpreadHours: 1, Purpose: PurposeStatusUpdate, Urgency: MeetingUrgencyNormal})
	if !result.ShouldNudge {
		t.Fatal("status update with no urgency should get a mild nudge")
	}
	if result.Urgency != Mild {
		t.Errorf("urgency = %s, want mild", result.Urgency)
	}

	// High urgency suppresses the purpose trigger.
	result = Evaluate(Input{SpreadHours: 1, Purpose: PurposeStatusUpdate, Urgency: MeetingUrgencyHigh})
	if result.ShouldNudge {
		t.Error("urgent status update should not nudge")
	}
}

func TestEvaluateStrengthAccumulatesAndCaps(t *testing.T) {
	agg := &sacrifice.Aggregate{AveragePoints: 8, MaxPoints: 20, FairnessIndex: 3, ImbalanceWarning: true}

	light := Evaluate(Input{SpreadHours: 9, Purpose: PurposeDecision})
	heavy := Evaluate(Input{SpreadHours: 14, Aggregate: agg, Purpose: PurposeStatusUpdate, Urgency: MeetingUrgencyLow})

	if heavy.NudgeStrength <= light.NudgeStrength {
		t.Errorf("more triggers must mean more strength: heavy %d vs light %d", heavy.NudgeStrength, light.NudgeStrength)
	}
	if heavy.NudgeStrength > 100 {
		t.Errorf("strength %d exceeds 100", heavy.NudgeStrength)
	}
	// 40 + 25 + 20 + 20 = 105, capped.
	if heavy.NudgeStrength != 100 {
		t.Errorf("strength = %d, want capped 100", heavy.NudgeStrength)
	}
}

func TestRankAlternativesByPurpose(t *testing.T) {
	tests := []struct {
		purpose Purpose
		top     AlternativeType
	}{
		{PurposeStatusUpdate, Loom},
		{PurposeDecision, Doc},
		{PurposeBrainstorm, Doc},
		{PurposeSocial, Slack},
	}

	for _, tt := range tests {
		t.Run(tt.purpose.String(), func(t *testing.T) {
			ranked := RankAlternatives(tt.purpose)
			if len(ranked) != 5 {
				t.Fatalf("got %d alternatives, want 5", len(ranked))
			}
			if ranked[0].Type != tt.top {
				t.Errorf("top alternative = %s, want %s", ranked[0].Type, tt.top)
			}
			for i := 1; i < len(ranked); i++ {
				if ranked[i].Suitability > ranked[i-1].Suitability {
					t.Errorf("alternatives not ordered: %s above %s", ranked[i].Type, ranked[i-1].Type)
				}
			}
			for _, alt := range ranked {
				if alt.Name == "" || alt.BestFor == "" {
					t.Errorf("%s: missing name or best-use description", alt.Type)
				}
			}
		})
	}
}

func TestPurposeParseRoundTrip(t *testing.T) {
	for _, p := range []Purpose{PurposeStatusUpdate, PurposeDecision, PurposeBrainstorm, PurposeOneOnOne, PurposeSocial, PurposeOther} {
		got, err := ParsePurpose(p.String())
		if err != nil {
			t.Fatalf("ParsePurpose(%q): %v", p.String(), err)
		}
		if got != p {
			t.Errorf("ParsePurpose(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if _, err := ParsePurpose("sermon"); err == nil {
		t.Error("expected error for unknown purpose")
	}
}
