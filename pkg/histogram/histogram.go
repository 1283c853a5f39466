// Package histogram renders the 24-hour scored timeline for terminal output.
// Presentation only: every number it prints comes straight from the engine's
// overlap windows.
package histogram

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/syncgroove/golden/pkg/golden"
	"github.com/syncgroove/golden/pkg/tzconvert"
)

const barWidth = 25

// Timeline renders one line per UTC hour: local display time, a marker for
// the hour type, a bar scaled to the golden score, and the availability
// count. displayTimezone picks the wall clock for the left column; pass
// "UTC" to see the raw ranking axis.
func Timeline(windows []golden.OverlapWindow, displayTimezone string, ref time.Time) string {
	var output strings.Builder

	output.WriteString("🕐 Golden Windows (" + displayTimezone + ")\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")

	for _, w := range windows {
		localHour := w.UTCHour
		if displayTimezone != "UTC" {
			converted, err := tzconvert.UTCHourToLocal(w.UTCHour, displayTimezone, ref)
			if err == nil {
				localHour = converted
			}
		}

		marker := " "
		markerColor := color.New(color.Reset)
		switch {
		case w.AllAvailable && w.GoldenScore >= 80:
			marker = "★"
			markerColor = color.New(color.FgYellow)
		case w.AllAvailable:
			marker = "*"
			markerColor = color.New(color.FgGreen)
		case w.AvailableCount == 0:
			marker = "z"
			markerColor = color.New(color.FgBlue)
		}

		bar := strings.Repeat("█", int(w.GoldenScore/100*barWidth))
		if bar == "" && w.GoldenScore > 0 {
			bar = "▌"
		}

		line := fmt.Sprintf("%02d:00 %s %s%s %3.0f  %d/%d\n",
			localHour,
			markerColor.Sprint(marker),
			scoreColor(w.GoldenScore).Sprint(bar),
			strings.Repeat(" ", barWidth-len([]rune(bar))),
			w.GoldenScore,
			w.AvailableCount, len(w.Participants))
		output.WriteString(line)
	}

	output.WriteString(strings.Repeat("─", 50) + "\n")
	output.WriteString("★ excellent, everyone free   * everyone free   z nobody free\n")
	return output.String()
}

// BestTimes renders a ranked slot list.
func BestTimes(slots []golden.BestTimeSlot) string {
	if len(slots) == 0 {
		return "No golden window found for this group.\n"
	}

	var output strings.Builder
	output.WriteString("🏆 Best Meeting Times\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")

	for _, s := range slots {
		label := scoreColor(s.GoldenScore).Sprint(s.Recommendation)
		output.WriteString(fmt.Sprintf("%d. %02d:00 UTC  score %.0f (%s)\n", s.Rank, s.UTCHour, s.GoldenScore, label))
		for _, pw := range s.Participants {
			state := "free"
			if !pw.IsAvailable {
				state = "unavailable"
			}
			name := pw.Name
			if name == "" {
				name = pw.ParticipantID
			}
			output.WriteString(fmt.Sprintf("     %-12s %02d:00 local, sharpness %.2f, %s\n", name, pw.LocalHour, pw.Sharpness, state))
		}
	}
	return output.String()
}

// Ranges renders contiguous good ranges.
func Ranges(ranges []golden.TimeRange) string {
	if len(ranges) == 0 {
		return "No contiguous ranges met the quality bar.\n"
	}

	var output strings.Builder
	output.WriteString("📅 Contiguous Windows (UTC)\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")
	for _, r := range ranges {
		output.WriteString(fmt.Sprintf("%02d:00-%02d:00  %dh  avg quality %.0f\n",
			r.StartHour, r.EndHour, r.DurationHours, r.AvgQuality))
	}
	return output.String()
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 60:
		return color.New(color.FgYellow)
	case score >= 40:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgRed)
	}
}
