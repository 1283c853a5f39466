package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/syncgroove/golden/pkg/golden"
	"github.com/syncgroove/golden/pkg/nudge"
	"github.com/syncgroove/golden/pkg/rescache"
	"github.com/syncgroove/golden/pkg/roster"
	"github.com/syncgroove/golden/pkg/sacrifice"
	"github.com/syncgroove/golden/pkg/tzconvert"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	engine *golden.Engine
	cache  *rescache.Cache
	logger *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(engine *golden.Engine, cache *rescache.Cache, logger *slog.Logger) *Handlers {
	return &Handlers{engine: engine, cache: cache, logger: logger}
}

// BestTimesRequest is the body for POST /api/best-times.
type BestTimesRequest struct {
	Participants        []golden.Participant `json:"participants"`
	TopN                int                  `json:"top_n"`
	RequireAllAvailable *bool                `json:"require_all_available,omitempty"`
	MinQualityScore     float64              `json:"min_quality_score"`
	MinAvailable        int                  `json:"min_available"`
	Date                string               `json:"date,omitempty"` // YYYY-MM-DD
	Ranges              bool                 `json:"ranges,omitempty"`
}

// HeatmapRequest is the body for POST /api/heatmap.
type HeatmapRequest struct {
	Participants []golden.Participant `json:"participants"`
	Date         string               `json:"date,omitempty"`
}

// SacrificeRequest is the body for POST /api/sacrifice.
type SacrificeRequest struct {
	Participants    []golden.Participant `json:"participants"`
	UTCHour         int                  `json:"utc_hour"`
	DurationMinutes int                  `json:"duration_minutes"`
	IsRecurring     bool                 `json:"is_recurring"`
	OrganizerID     string               `json:"organizer_id,omitempty"`
	Date            string               `json:"date,omitempty"`
}

// SacrificeResponse pairs per-participant scores with the meeting aggregate.
type SacrificeResponse struct {
	Scores    map[string]sacrifice.Result `json:"scores"`
	Aggregate sacrifice.Aggregate         `json:"aggregate"`
}

// NudgeRequest is the body for POST /api/nudge.
type NudgeRequest struct {
	Participants    []golden.Participant `json:"participants"`
	Purpose         string               `json:"purpose"`
	Urgency         string               `json:"urgency"`
	DurationMinutes int                  `json:"duration_minutes"`
	UTCHour         *int                 `json:"utc_hour,omitempty"`
	IsRecurring     bool                 `json:"is_recurring"`
	Date            string               `json:"date,omitempty"`
}

func referenceDate(date string) (time.Time, error) {
	if date == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", date)
}

func validateParticipants(participants []golden.Participant) error {
	for i := range participants {
		if err := roster.Validate(&participants[i]); err != nil {
			return err
		}
	}
	return nil
}

// cached runs compute, serving and filling the response cache keyed by the
// endpoint and raw body.
func (h *Handlers) cached(c *gin.Context, body []byte, compute func() (any, error)) {
	endpoint := c.FullPath()
	if data, ok := h.cache.Get(endpoint, body); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	result, err := compute()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encoding response"})
		return
	}
	h.cache.Set(endpoint, body, data)
	c.Data(http.StatusOK, "application/json", data)
}

func bindJSON(c *gin.Context, v any) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

// BestTimesHandler handles POST /api/best-times.
func (h *Handlers) BestTimesHandler(c *gin.Context) {
	var req BestTimesRequest
	body, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	h.cached(c, body, func() (any, error) {
		if err := validateParticipants(req.Participants); err != nil {
			return nil, err
		}
		ref, err := referenceDate(req.Date)
		if err != nil {
			return nil, err
		}

		query := golden.DefaultQuery()
		query.ReferenceDate = ref
		if req.TopN > 0 {
			query.TopN = req.TopN
		}
		if req.RequireAllAvailable != nil {
			query.RequireAllAvailable = *req.RequireAllAvailable
		}
		query.MinQualityScore = req.MinQualityScore
		query.MinAvailable = req.MinAvailable

		if req.Ranges {
			ranges, err := h.engine.FindBestTimeRanges(req.Participants, query)
			if err != nil {
				return nil, err
			}
			return gin.H{"ranges": ranges}, nil
		}

		slots, err := h.engine.FindBestTimes(req.Participants, query)
		if err != nil {
			return nil, err
		}
		if slots == nil {
			slots = []golden.BestTimeSlot{}
		}
		return gin.H{"best_times": slots}, nil
	})
}

// HeatmapHandler handles POST /api/heatmap.
func (h *Handlers) HeatmapHandler(c *gin.Context) {
	var req HeatmapRequest
	body, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	h.cached(c, body, func() (any, error) {
		if err := validateParticipants(req.Participants); err != nil {
			return nil, err
		}
		ref, err := referenceDate(req.Date)
		if err != nil {
			return nil, err
		}
		return h.engine.Heatmap(req.Participants, ref)
	})
}

// SacrificeHandler handles POST /api/sacrifice.
func (h *Handlers) SacrificeHandler(c *gin.Context) {
	var req SacrificeRequest
	body, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	h.cached(c, body, func() (any, error) {
		resp, _, err := h.scoreSacrifice(&req)
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
}

func (h *Handlers) scoreSacrifice(req *SacrificeRequest) (*SacrificeResponse, []sacrifice.Result, error) {
	if err := validateParticipants(req.Participants); err != nil {
		return nil, nil, err
	}
	if len(req.Participants) == 0 {
		return nil, nil, golden.ErrNoParticipants
	}
	if req.UTCHour < 0 || req.UTCHour > 23 {
		return nil, nil, errOutOfRangeHour
	}
	ref, err := referenceDate(req.Date)
	if err != nil {
		return nil, nil, err
	}

	meetingUTC := time.Date(ref.Year(), ref.Month(), ref.Day(), req.UTCHour, 0, 0, 0, time.UTC)

	scores := make(map[string]sacrifice.Result, len(req.Participants))
	all := make([]sacrifice.Result, 0, len(req.Participants))
	for i := range req.Participants {
		p := &req.Participants[i]
		opts := sacrifice.Options{
			DurationMinutes: req.DurationMinutes,
			IsRecurring:     req.IsRecurring,
			IsOrganizer:     p.ID == req.OrganizerID,
		}
		result, err := sacrifice.ScoreForTimezone(meetingUTC, p.Timezone, opts)
		if err != nil {
			return nil, nil, err
		}
		scores[p.ID] = result
		all = append(all, result)
	}

	aggregate, err := sacrifice.MeetingTotal(all)
	if err != nil {
		return nil, nil, err
	}
	return &SacrificeResponse{Scores: scores, Aggregate: aggregate}, all, nil
}

// NudgeHandler handles POST /api/nudge.
func (h *Handlers) NudgeHandler(c *gin.Context) {
	var req NudgeRequest
	body, ok := bindJSON(c, &req)
	if !ok {
		return
	}

	h.cached(c, body, func() (any, error) {
		if err := validateParticipants(req.Participants); err != nil {
			return nil, err
		}
		if len(req.Participants) == 0 {
			return nil, golden.ErrNoParticipants
		}
		purpose, err := nudge.ParsePurpose(req.Purpose)
		if err != nil {
			return nil, err
		}
		urgency, err := nudge.ParseMeetingUrgency(req.Urgency)
		if err != nil {
			return nil, err
		}
		ref, err := referenceDate(req.Date)
		if err != nil {
			return nil, err
		}

		timezones := make([]string, 0, len(req.Participants))
		for i := range req.Participants {
			timezones = append(timezones, req.Participants[i].Timezone)
		}
		spread, err := tzconvert.SpreadHours(timezones, ref)
		if err != nil {
			return nil, err
		}

		in := nudge.Input{
			SpreadHours:     spread,
			Purpose:         purpose,
			Urgency:         urgency,
			DurationMinutes: req.DurationMinutes,
		}

		// When a candidate hour is supplied, fold its sacrifice profile in.
		if req.UTCHour != nil {
			sreq := SacrificeRequest{
				Participants:    req.Participants,
				UTCHour:         *req.UTCHour,
				DurationMinutes: req.DurationMinutes,
				IsRecurring:     req.IsRecurring,
				Date:            req.Date,
			}
			resp, _, err := h.scoreSacrifice(&sreq)
			if err != nil {
				return nil, err
			}
			in.Aggregate = &resp.Aggregate
		}

		return nudge.Evaluate(in), nil
	})
}

// DecisionHandler handles POST /api/decisions: records whether a nudged
// meeting went async, so reclaimed hours can be reported later.
func (h *Handlers) DecisionHandler(store *decisionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Outcome         string `json:"outcome"`
			DurationMinutes int    `json:"duration_minutes"`
			AttendeeCount   int    `json:"attendee_count"`
		}
		if _, ok := bindJSON(c, &req); !ok {
			return
		}

		outcome := nudge.Outcome(req.Outcome)
		switch outcome {
		case nudge.WentAsync, nudge.KeptMeeting, nudge.Cancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown outcome"})
			return
		}

		record := nudge.NewDecisionRecord(outcome, req.DurationMinutes, req.AttendeeCount, time.Now().UTC())
		store.add(record)
		c.JSON(http.StatusOK, gin.H{"id": record.ID})
	}
}

// ReclaimedHandler handles GET /api/reclaimed: async-hour stats for the last
// 7 days against the 7 before.
func (h *Handlers) ReclaimedHandler(store *decisionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		current := store.between(now.AddDate(0, 0, -7), now)
		previous := store.between(now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
		c.JSON(http.StatusOK, nudge.CalculateReclaimedStats(current, previous))
	}
}

// requestIDMiddleware tags every request with a UUID for log correlation.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
