package sacrifice

import (
	"errors"

	"github.com/montanaflynn/stats"
)

// ErrNoScores is returned when an aggregate is requested over zero
// participant scores; averaging nobody is a caller bug, not a zero.
var ErrNoScores = errors.New("no participant scores to aggregate")

// Imbalance thresholds: one participant bearing more than imbalanceRatio
// times the average cost, and that cost being real (at or beyond the Bad
// band), trips the warning.
const (
	imbalanceRatio     = 2.5
	imbalanceMinPoints = 4.0
)

// Aggregate summarizes sacrifice across all participants for one slot.
type Aggregate struct {
	TotalPoints   float64 `json:"total_points"`
	AveragePoints float64 `json:"average_points"`
	MaxPoints     float64 `json:"max_points"`

	// FairnessIndex is max / average: 1.0 means the cost is spread evenly,
	// larger values mean one participant carries a disproportionate share.
	// An all-zero score set is defined as 1.0.
	FairnessIndex float64 `json:"fairness_index"`

	ImbalanceWarning bool `json:"imbalance_warning"`
}

// MeetingTotal aggregates per-participant sacrifice scores for one meeting
// slot. An empty list is rejected rather than averaged into a
// division by zero.
func MeetingTotal(scores []Result) (Aggregate, error) {
	if len(scores) == 0 {
		return Aggregate{}, ErrNoScores
	}

	points := make([]float64, len(scores))
	for i, s := range scores {
		points[i] = s.Points
	}

	total, err := stats.Sum(points)
	if err != nil {
		return Aggregate{}, err
	}
	avg, err := stats.Mean(points)
	if err != nil {
		return Aggregate{}, err
	}
	maxPoints, err := stats.Max(points)
	if err != nil {
		return Aggregate{}, err
	}

	fairness := 1.0
	if avg > 0 {
		fairness = maxPoints / avg
	}

	return Aggregate{
		TotalPoints:      total,
		AveragePoints:    avg,
		MaxPoints:        maxPoints,
		FairnessIndex:    fairness,
		ImbalanceWarning: fairness > imbalanceRatio && maxPoints >= imbalanceMinPoints,
	}, nil
}
