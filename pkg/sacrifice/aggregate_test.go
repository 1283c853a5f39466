package sacrifice

import (
	"errors"
	"math"
	"testing"
)

func scoresAt(hours []int, opts Options) []Result {
	scores := make([]Result, len(hours))
	for i, h := range hours {
		scores[i] = Score(h, opts)
	}
	return scores
}

func TestMeetingTotal(t *testing.T) {
	// Hours 10, 14, 23: base points 0, 0, 8.
	agg, err := MeetingTotal(scoresAt([]int{10, 14, 23}, Options{DurationMinutes: 30}))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(agg.TotalPoints-8) > 1e-9 {
		t.Errorf("total = %v, want 8", agg.TotalPoints)
	}
	if math.Abs(agg.AveragePoints-8.0/3.0) > 1e-9 {
		t.Errorf("average = %v, want %v", agg.AveragePoints, 8.0/3.0)
	}
	if agg.MaxPoints != 8 {
		t.Errorf("max = %v, want 8", agg.MaxPoints)
	}
	// Fairness: 8 / (8/3) = 3, one participant bears all the cost.
	if math.Abs(agg.FairnessIndex-3) > 1e-9 {
		t.Errorf("fairness index = %v, want 3", agg.FairnessIndex)
	}
	if !agg.ImbalanceWarning {
		t.Error("one participant at 8 pts among zeros must trip the imbalance warning")
	}
}

func TestMeetingTotalEvenSpreadIsFair(t *testing.T) {
	// Everyone at the same evening hour: fairness index exactly 1.
	agg, err := MeetingTotal(scoresAt([]int{20, 20, 20}, Options{DurationMinutes: 30}))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(agg.FairnessIndex-1) > 1e-9 {
		t.Errorf("fairness index = %v, want 1", agg.FairnessIndex)
	}
	if agg.ImbalanceWarning {
		t.Error("an even spread must not warn")
	}
}

func TestMeetingTotalAllZeroScores(t *testing.T) {
	// All participants inside work hours: defined fairness, no warning, no
	// division by zero.
	agg, err := MeetingTotal(scoresAt([]int{10, 11, 15}, Options{DurationMinutes: 30}))
	if err != nil {
		t.Fatal(err)
	}
	if agg.FairnessIndex != 1 {
		t.Errorf("all-zero fairness index = %v, want 1", agg.FairnessIndex)
	}
	if agg.ImbalanceWarning {
		t.Error("zero cost cannot be imbalanced")
	}
}

func TestMeetingTotalSmallImbalanceDoesNotWarn(t *testing.T) {
	// Max well above average but trivial in absolute terms: hours 10, 10, 17
	// give max 1 pt. A warning over one point would be noise.
	agg, err := MeetingTotal(scoresAt([]int{10, 10, 17}, Options{DurationMinutes: 30}))
	if err != nil {
		t.Fatal(err)
	}
	if agg.FairnessIndex <= imbalanceRatio {
		t.Fatalf("test setup: fairness index %v should exceed ratio %v", agg.FairnessIndex, imbalanceRatio)
	}
	if agg.ImbalanceWarning {
		t.Error("max below the minimum-points floor must not warn")
	}
}

func TestMeetingTotalRejectsEmpty(t *testing.T) {
	if _, err := MeetingTotal(nil); !errors.Is(err, ErrNoScores) {
		t.Errorf("err = %v, want ErrNoScores", err)
	}
	if _, err := MeetingTotal([]Result{}); !errors.Is(err, ErrNoScores) {
		t.Errorf("err = %v, want ErrNoScores", err)
	}
}
