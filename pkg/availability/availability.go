// Package availability answers one question: is a participant free to meet at
// a given local hour? A local hour is available iff it falls inside the
// participant's work-hour window AND is not in their unavailable-hours set.
package availability

// Window is a daily work-hour window in local hours, inclusive of StartHour
// and exclusive of EndHour. The half-open convention holds everywhere hours
// are compared: with the default 9-17 window, hour 9 is available and hour 17
// is not.
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultWindow is the 9-17 local work-hour window used when a participant
// does not specify one.
var DefaultWindow = Window{StartHour: 9, EndHour: 17}

// Contains reports whether a local hour falls inside the half-open window.
// Windows with StartHour > EndHour wrap past midnight (a 22-6 night shift
// covers 22,23,0..5). A zero-width window contains nothing.
func (w Window) Contains(localHour int) bool {
	if localHour < 0 || localHour > 23 {
		return false
	}
	if w.StartHour == w.EndHour {
		return false
	}
	if w.StartHour < w.EndHour {
		return localHour >= w.StartHour && localHour < w.EndHour
	}
	// Overnight window.
	return localHour >= w.StartHour || localHour < w.EndHour
}

// Hours returns the window length in hours.
func (w Window) Hours() int {
	if w.StartHour == w.EndHour {
		return 0
	}
	if w.StartHour < w.EndHour {
		return w.EndHour - w.StartHour
	}
	return 24 - w.StartHour + w.EndHour
}

// IsHourAvailable reports whether a local hour is inside the work window and
// outside the unavailable set. The unavailable set is either the
// participant's custom set or the chronotype-default asleep hours; resolving
// which one applies is the caller's job.
func IsHourAvailable(localHour int, w Window, unavailable map[int]bool) bool {
	if !w.Contains(localHour) {
		return false
	}
	return !unavailable[localHour]
}
