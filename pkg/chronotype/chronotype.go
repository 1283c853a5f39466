// Package chronotype models per-participant cognitive sharpness across the
// 24-hour day. Each chronotype is a fixed, research-tuned 24-entry table, not
// a computed curve: sharpness perception is categorical, and the tables are
// the ground truth the rest of the engine indexes into.
package chronotype

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Chronotype is a participant's categorical circadian profile.
type Chronotype int

const (
	// Normal peaks late morning with a post-lunch dip.
	Normal Chronotype = iota
	// EarlyBird shifts the peak roughly two hours earlier.
	EarlyBird
	// NightOwl shifts the peak into the late afternoon and evening.
	NightOwl
	// Custom uses a caller-supplied partial hour->sharpness mapping,
	// falling back to the Normal table for unspecified hours.
	Custom
)

// String returns the wire form of the chronotype.
func (c Chronotype) String() string {
	switch c {
	case EarlyBird:
		return "early_bird"
	case NightOwl:
		return "night_owl"
	case Custom:
		return "custom"
	case Normal:
		return "normal"
	default:
		return "normal"
	}
}

// Parse converts a wire-form chronotype string. Unknown values are an error,
// never silently coerced to a default.
func Parse(s string) (Chronotype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early_bird":
		return EarlyBird, nil
	case "normal", "":
		return Normal, nil
	case "night_owl":
		return NightOwl, nil
	case "custom":
		return Custom, nil
	default:
		return Normal, fmt.Errorf("unknown chronotype %q", s)
	}
}

// MarshalJSON encodes the chronotype as its wire string.
func (c Chronotype) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a wire string, rejecting unknown values.
func (c *Chronotype) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Sharpness tables, indexed by local hour 0-23. Values are in [0,1].
// Shared shape: overnight trough, morning rise, daytime peak, post-lunch dip,
// evening decline. Each chronotype shifts the peak location.
var (
	earlyBirdCurve = [24]float64{
		0.05, 0.05, 0.05, 0.10, 0.15, 0.30, // 00-05: trough, stirring by 5am
		0.50, 0.75, 0.90, 1.00, 0.95, 0.85, // 06-11: fast rise, 9am peak
		0.70, 0.60, 0.65, 0.70, 0.60, 0.50, // 12-17: lunch dip, mild recovery
		0.40, 0.30, 0.25, 0.10, 0.05, 0.05, // 18-23: early decline
	}

	normalCurve = [24]float64{
		0.10, 0.05, 0.05, 0.05, 0.10, 0.15, // 00-05: trough
		0.30, 0.50, 0.70, 0.85, 0.95, 1.00, // 06-11: rise to 11am peak
		0.80, 0.70, 0.75, 0.85, 0.80, 0.70, // 12-17: lunch dip, afternoon recovery
		0.60, 0.50, 0.40, 0.30, 0.20, 0.15, // 18-23: decline
	}

	nightOwlCurve = [24]float64{
		0.40, 0.30, 0.20, 0.10, 0.05, 0.05, // 00-05: still winding down at midnight
		0.05, 0.10, 0.20, 0.35, 0.50, 0.65, // 06-11: slow, late rise
		0.60, 0.55, 0.70, 0.85, 0.95, 1.00, // 12-17: climb to 5pm peak
		0.95, 0.85, 0.75, 0.65, 0.55, 0.45, // 18-23: long, bright evening
	}
)

// asleepThreshold marks hours the chronotype is presumed asleep. Hours whose
// table value sits below it form the default unavailable-hours set.
const asleepThreshold = 0.25

// Curve returns the 24-entry sharpness table for a chronotype.
// Custom uses the Normal table as its fallback base.
func Curve(c Chronotype) [24]float64 {
	switch c {
	case EarlyBird:
		return earlyBirdCurve
	case NightOwl:
		return nightOwlCurve
	default:
		return normalCurve
	}
}

// Sharpness returns the [0,1] sharpness for a local hour. For Custom
// chronotypes, hours present in the custom map win; every other hour falls
// back to the Normal table value so the result is never undefined.
// Out-of-range hours are wrapped onto the 24-hour clock.
func Sharpness(c Chronotype, custom map[int]float64, localHour int) float64 {
	hour := ((localHour % 24) + 24) % 24
	if c == Custom && custom != nil {
		if v, ok := custom[hour]; ok {
			return clamp01(v)
		}
	}
	return Curve(c)[hour]
}

// DefaultAsleepHours returns the local hours a chronotype is presumed asleep,
// derived from the same tables that drive sharpness. The availability model
// uses this as the default unavailable-hours set when a participant supplies
// none. Custom chronotypes get the Normal set.
func DefaultAsleepHours(c Chronotype) map[int]bool {
	curve := Curve(c)
	asleep := make(map[int]bool)
	for hour := range 24 {
		if curve[hour] < asleepThreshold {
			asleep[hour] = true
		}
	}
	return asleep
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
