// Package main implements the golden CLI for finding fair meeting times
// across timezones.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/syncgroove/golden/pkg/golden"
	"github.com/syncgroove/golden/pkg/histogram"
	"github.com/syncgroove/golden/pkg/nudge"
	"github.com/syncgroove/golden/pkg/roster"
	"github.com/syncgroove/golden/pkg/sacrifice"
	"github.com/syncgroove/golden/pkg/tzconvert"
)

var (
	dateFlag     = flag.String("date", "", "Reference date in YYYY-MM-DD (default: today, DST-correct)")
	topN         = flag.Int("top", 5, "Number of best slots to show")
	allAvailable = flag.Bool("all-available", true, "Only consider hours where everyone is free")
	minQuality   = flag.Float64("min-quality", 0, "Minimum quality score (0-100)")
	minAvailable = flag.Int("min-available", 0, "Minimum number of free participants when -all-available=false")
	showRanges   = flag.Bool("ranges", false, "Show contiguous high-quality ranges instead of slots")
	showHeatmap  = flag.Bool("heatmap", false, "Show the full 24-hour timeline")
	displayTZ    = flag.String("timezone", "UTC", "Timezone for displayed wall-clock times")
	meetingHour  = flag.Int("at", -1, "Score a specific UTC hour: sacrifice breakdown plus async nudge (0-23)")
	duration     = flag.Int("duration", 60, "Meeting duration in minutes (used with -at)")
	recurring    = flag.Bool("recurring", false, "Meeting recurs weekly (used with -at)")
	purposeFlag  = flag.String("purpose", "other", "Meeting purpose: status_update, decision, brainstorm, one_on_one, social (used with -at)")
	urgencyFlag  = flag.String("urgency", "normal", "Meeting urgency: low, normal, high (used with -at)")
	jsonOut      = flag.Bool("json", false, "Emit JSON instead of the terminal report")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("golden CLI v1.2.0")
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <roster.json | https://...>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if err := run(logger, args[0]); err != nil {
		logger.Error("golden failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, source string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	participants, err := roster.Load(ctx, source, logger)
	if err != nil {
		return err
	}
	logger.Debug("roster loaded", "participants", len(participants))

	ref := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			return fmt.Errorf("parsing -date: %w", err)
		}
		ref = parsed
	}

	engine := golden.New(golden.WithLogger(logger))

	if *meetingHour >= 0 {
		return scoreMeeting(participants, ref)
	}

	query := golden.Query{
		TopN:                *topN,
		RequireAllAvailable: *allAvailable,
		MinQualityScore:     *minQuality,
		MinAvailable:        *minAvailable,
		ReferenceDate:       ref,
	}

	if *showRanges {
		ranges, err := engine.FindBestTimeRanges(participants, query)
		if err != nil {
			return err
		}
		if *jsonOut {
			return emitJSON(ranges)
		}
		fmt.Print(histogram.Ranges(ranges))
		return nil
	}

	slots, err := engine.FindBestTimes(participants, query)
	if err != nil {
		return err
	}

	if *jsonOut {
		return emitJSON(slots)
	}

	fmt.Print(histogram.BestTimes(slots))

	if *showHeatmap {
		windows, err := engine.FindAllOverlapWindows(participants, ref)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(histogram.Timeline(windows, *displayTZ, ref))
	}
	return nil
}

// scoreMeeting reports per-participant sacrifice for a fixed UTC hour and
// whether the group should go async instead.
func scoreMeeting(participants []golden.Participant, ref time.Time) error {
	if *meetingHour > 23 {
		return fmt.Errorf("-at hour %d out of range", *meetingHour)
	}
	purpose, err := nudge.ParsePurpose(*purposeFlag)
	if err != nil {
		return err
	}
	urgency, err := nudge.ParseMeetingUrgency(*urgencyFlag)
	if err != nil {
		return err
	}

	meetingUTC := time.Date(ref.Year(), ref.Month(), ref.Day(), *meetingHour, 0, 0, 0, time.UTC)
	opts := sacrifice.Options{
		DurationMinutes: *duration,
		IsRecurring:     *recurring,
	}

	timezones := make([]string, 0, len(participants))
	scores := make([]sacrifice.Result, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		timezones = append(timezones, p.Timezone)

		personOpts := opts
		if i == 0 {
			personOpts.IsOrganizer = true
		}
		result, err := sacrifice.ScoreForTimezone(meetingUTC, p.Timezone, personOpts)
		if err != nil {
			return fmt.Errorf("scoring %s: %w", p.ID, err)
		}
		scores = append(scores, result)
	}

	aggregate, err := sacrifice.MeetingTotal(scores)
	if err != nil {
		return err
	}

	spread, err := tzconvert.SpreadHours(timezones, ref)
	if err != nil {
		return err
	}

	decision := nudge.Evaluate(nudge.Input{
		SpreadHours:     spread,
		Aggregate:       &aggregate,
		Purpose:         purpose,
		Urgency:         urgency,
		DurationMinutes: *duration,
	})

	if *jsonOut {
		return emitJSON(struct {
			Scores    []sacrifice.Result  `json:"scores"`
			Aggregate sacrifice.Aggregate `json:"aggregate"`
			Nudge     nudge.Result        `json:"nudge"`
		}{scores, aggregate, decision})
	}

	fmt.Printf("💸 Sacrifice at %02d:00 UTC\n", *meetingHour)
	for i, s := range scores {
		name := participants[i].Name
		if name == "" {
			name = participants[i].ID
		}
		fmt.Printf("  %-12s %s\n", name, s.Breakdown)
	}
	fmt.Printf("  total %.1f pts, avg %.1f, max %.1f, fairness %.2f\n",
		aggregate.TotalPoints, aggregate.AveragePoints, aggregate.MaxPoints, aggregate.FairnessIndex)
	if aggregate.ImbalanceWarning {
		fmt.Println("  ⚠️  burden is unevenly shared")
	}

	fmt.Println()
	fmt.Println(decision.Message)
	for _, r := range decision.Reasons {
		fmt.Printf("  - %s (weight %d)\n", r.Description, r.Weight)
	}
	if decision.ShouldNudge {
		fmt.Println("  Alternatives:")
		for _, a := range decision.SuggestedAlternatives {
			fmt.Printf("    %-18s %3.0f  %s\n", a.Name, a.Suitability, a.BestFor)
		}
	}
	return nil
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
