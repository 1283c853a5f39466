// Package roster loads and validates participant lists from JSON files or
// HTTP endpoints.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/syncgroove/golden/pkg/golden"
	"github.com/syncgroove/golden/pkg/tzconvert"
)

const maxRosterBytes = 1 << 20 // 1 MiB

// ErrEmptyRoster is returned when the source parses but lists no participants.
var ErrEmptyRoster = errors.New("roster has no participants")

// File contains the on-disk roster format.
type File struct {
	Participants []golden.Participant `json:"participants"`
}

// Load reads a roster from a local path or an http(s) URL.
func Load(ctx context.Context, source string, logger *slog.Logger) ([]golden.Participant, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetch(ctx, source, logger)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", source, err)
	}

	return Parse(data)
}

// Parse decodes and validates roster JSON.
func Parse(data []byte) ([]golden.Participant, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		// Accept a bare participant array too.
		var list []golden.Participant
		if arrErr := json.Unmarshal(data, &list); arrErr != nil {
			return nil, fmt.Errorf("parsing roster: %w", err)
		}
		f.Participants = list
	}

	if len(f.Participants) == 0 {
		return nil, ErrEmptyRoster
	}

	for i := range f.Participants {
		if err := Validate(&f.Participants[i]); err != nil {
			return nil, fmt.Errorf("participant %d: %w", i, err)
		}
	}
	return f.Participants, nil
}

// Validate checks a single participant and fills defaults.
func Validate(p *golden.Participant) error {
	if p.ID == "" {
		return errors.New("missing id")
	}
	if p.Timezone == "" {
		return errors.New("missing timezone")
	}
	if _, err := tzconvert.Location(p.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", p.Timezone, err)
	}
	w := p.WorkWindow()
	if w.StartHour < 0 || w.StartHour > 23 || w.EndHour < 0 || w.EndHour > 24 {
		return fmt.Errorf("work window [%d,%d) out of range", w.StartHour, w.EndHour)
	}
	for _, h := range p.UnavailableHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("unavailable hour %d out of range", h)
		}
	}
	return nil
}

func fetch(ctx context.Context, url string, logger *slog.Logger) ([]byte, error) {
	var data []byte

	retryCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(retryCtx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close() //nolint:errcheck // read-only body

			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("HTTP %d fetching roster", resp.StatusCode)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}

			data, err = io.ReadAll(io.LimitReader(resp.Body, maxRosterBytes))
			return err
		},
		retry.Context(retryCtx),
		retry.Attempts(5),
		retry.Delay(100*time.Millisecond),
		retry.MaxDelay(3*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(200*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			logger.Info("Retrying roster fetch", "attempt", n+1, "error", err.Error())
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return data, nil
}
