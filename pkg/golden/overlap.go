package golden

import (
	"fmt"
	"time"

	"github.com/syncgroove/golden/pkg/tzconvert"
)

// CalculateOverlapWindow scores one UTC hour for a participant set on the
// reference date: each participant's local hour, sharpness and availability,
// combined into the window's quality and golden scores.
func (e *Engine) CalculateOverlapWindow(utcHour int, participants []Participant, ref time.Time) (OverlapWindow, error) {
	if len(participants) == 0 {
		return OverlapWindow{}, ErrNoParticipants
	}

	windows := make([]ParticipantWindow, 0, len(participants))
	allAvailable := true
	availableCount := 0

	for i := range participants {
		p := &participants[i]
		localHour, err := tzconvert.UTCHourToLocal(utcHour, p.Timezone, ref)
		if err != nil {
			return OverlapWindow{}, fmt.Errorf("participant %q: %w", p.ID, err)
		}

		profile := p.ProfileAt(localHour)
		windows = append(windows, ParticipantWindow{
			ParticipantID: p.ID,
			Name:          p.Name,
			Timezone:      p.Timezone,
			LocalHour:     localHour,
			Sharpness:     profile.Sharpness,
			IsAvailable:   profile.IsAvailable,
		})

		if profile.IsAvailable {
			availableCount++
		} else {
			allAvailable = false
		}
	}

	window := OverlapWindow{
		UTCHour:        utcHour,
		Participants:   windows,
		AllAvailable:   allAvailable,
		AvailableCount: availableCount,
	}
	window.QualityScore = qualityScore(windows)
	window.GoldenScore = e.goldenScore(window)
	return window, nil
}

// qualityScore is the availability-weighted mean sharpness, scaled to 0-100.
// Unavailable participants contribute zero sharpness while staying in the
// denominator: a slot missing half the team cannot hide the gap behind a
// shrinking average.
func qualityScore(windows []ParticipantWindow) float64 {
	if len(windows) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range windows {
		if w.IsAvailable {
			sum += w.Sharpness
		}
	}
	return 100 * sum / float64(len(windows))
}

// goldenScore applies the all-available boost, capped at 100.
func (e *Engine) goldenScore(w OverlapWindow) float64 {
	if !w.AllAvailable {
		return w.QualityScore
	}
	boosted := w.QualityScore * e.boost
	if boosted > 100 {
		return 100
	}
	return boosted
}

// FindAllOverlapWindows computes all 24 hourly windows for the reference
// date, unconditionally, in UTC-hour order.
func (e *Engine) FindAllOverlapWindows(participants []Participant, ref time.Time) ([]OverlapWindow, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	windows := make([]OverlapWindow, 0, 24)
	for utcHour := range 24 {
		w, err := e.CalculateOverlapWindow(utcHour, participants, ref)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	e.logger.Debug("computed overlap timeline",
		"participants", len(participants), "date", ref.Format("2006-01-02"))
	return windows, nil
}

// FindValidOverlapWindows filters the 24 hourly windows to those meeting the
// query's availability policy: all participants when RequireAllAvailable,
// otherwise at least MinAvailable participants (0 means any). The quality
// floor applies in both modes. An empty result is a normal outcome, not an
// error.
func (e *Engine) FindValidOverlapWindows(participants []Participant, q Query) ([]OverlapWindow, error) {
	ref := q.ReferenceDate
	if ref.IsZero() {
		ref = time.Now().UTC()
	}

	all, err := e.FindAllOverlapWindows(participants, ref)
	if err != nil {
		return nil, err
	}

	valid := make([]OverlapWindow, 0, len(all))
	for _, w := range all {
		if !windowQualifies(w, q) {
			continue
		}
		valid = append(valid, w)
	}
	return valid, nil
}

func windowQualifies(w OverlapWindow, q Query) bool {
	if q.RequireAllAvailable && !w.AllAvailable {
		return false
	}
	if !q.RequireAllAvailable && w.AvailableCount < q.MinAvailable {
		return false
	}
	return w.QualityScore >= q.MinQualityScore
}
