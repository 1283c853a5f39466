// Package tzconvert provides timezone conversion utilities for the scheduling
// engine. ALL candidate meeting hours are stored and ranked in UTC; these
// functions handle the conversion to each participant's local wall clock.
package tzconvert

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrUnknownTimezone is returned when an IANA timezone identifier cannot be
// resolved. Callers must treat this as a data-quality error, not retry.
var ErrUnknownTimezone = errors.New("unknown timezone")

// Location resolves an IANA timezone identifier.
func Location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, timezone)
	}
	return loc, nil
}

// UTCHourToLocal converts a UTC hour on the reference date to the
// corresponding local hour (0-23) in the target timezone.
//
// The conversion goes through full date-time arithmetic rather than integer
// offset addition, so fractional offsets (Asia/Kolkata UTC+5:30,
// Australia/Eucla UTC+8:45) and DST transitions on the reference date are
// honored. Converting a UTC instant to local time is total: every UTC instant
// has exactly one local reading, even on transition days.
func UTCHourToLocal(utcHour int, timezone string, ref time.Time) (int, error) {
	if utcHour < 0 || utcHour > 23 {
		return 0, fmt.Errorf("utc hour %d out of range [0,23]", utcHour)
	}
	loc, err := Location(timezone)
	if err != nil {
		return 0, err
	}
	t := time.Date(ref.Year(), ref.Month(), ref.Day(), utcHour, 0, 0, 0, time.UTC)
	return t.In(loc).Hour(), nil
}

// LocalHourToUTC converts a local hour on the reference date to the
// corresponding UTC hour. A local hour that does not exist on the reference
// date (spring-forward gap) normalizes forward to the next valid instant,
// per time.Date semantics; an hour that exists twice resolves to the first
// occurrence.
func LocalHourToUTC(localHour int, timezone string, ref time.Time) (int, error) {
	if localHour < 0 || localHour > 23 {
		return 0, fmt.Errorf("local hour %d out of range [0,23]", localHour)
	}
	loc, err := Location(timezone)
	if err != nil {
		return 0, err
	}
	t := time.Date(ref.Year(), ref.Month(), ref.Day(), localHour, 0, 0, 0, loc)
	return t.UTC().Hour(), nil
}

// OffsetHours returns the signed UTC offset, in hours, of the timezone at
// noon UTC on the reference date. Fractional offsets are preserved
// (e.g. 5.5 for Asia/Kolkata). Noon is used as the probe instant so that the
// answer reflects the DST state of the reference date itself rather than of
// the surrounding midnights.
func OffsetHours(timezone string, ref time.Time) (float64, error) {
	loc, err := Location(timezone)
	if err != nil {
		return 0, err
	}
	probe := time.Date(ref.Year(), ref.Month(), ref.Day(), 12, 0, 0, 0, time.UTC)
	_, secs := probe.In(loc).Zone()
	return float64(secs) / 3600.0, nil
}

// SpreadHours returns the widest pairwise UTC-offset distance, in hours,
// across a set of timezones on the reference date. A single timezone (or a
// set that collapses to one offset) has a spread of 0.
func SpreadHours(timezones []string, ref time.Time) (float64, error) {
	if len(timezones) == 0 {
		return 0, errors.New("no timezones given")
	}
	minOffset := math.MaxFloat64
	maxOffset := -math.MaxFloat64
	for _, tz := range timezones {
		offset, err := OffsetHours(tz, ref)
		if err != nil {
			return 0, err
		}
		if offset < minOffset {
			minOffset = offset
		}
		if offset > maxOffset {
			maxOffset = offset
		}
	}
	return maxOffset - minOffset, nil
}
