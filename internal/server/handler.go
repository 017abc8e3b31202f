// Package server provides HTTP handlers for the review scheduling service.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfukuda/recall/internal/analytics"
	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/review"
	"github.com/mfukuda/recall/internal/scheduler"
)

const (
	defaultStatisticsWindowDays = 30
	defaultForecastHorizonDays  = 7
)

// Handler serves the review queue, review submission, and analytics endpoints.
type Handler struct {
	items      item.Store
	events     review.EventStore
	processor  *review.Processor
	queue      *review.QueueManager
	sessionCfg review.SessionConfig
	logger     *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(
	items item.Store,
	events review.EventStore,
	processor *review.Processor,
	queue *review.QueueManager,
	sessionCfg review.SessionConfig,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		items:      items,
		events:     events,
		processor:  processor,
		queue:      queue,
		sessionCfg: sessionCfg,
		logger:     logger,
		now:        time.Now,
	}
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{
		Error: apiError{
			Message: msg,
			Code:    code,
		},
	})
}

// GetReviewQueue returns today's review session.
func (h *Handler) GetReviewQueue(c *gin.Context) {
	session, err := h.queue.BuildSession(c.Request.Context(), h.sessionCfg, h.now())
	if err != nil {
		h.logger.Error("failed to build review session", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

type submitReviewRequest struct {
	ItemID           string    `json:"item_id" binding:"required"`
	Quality          int       `json:"quality"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type submitReviewResponse struct {
	Item            item.Item         `json:"item"`
	PreviousMastery item.MasteryLevel `json:"previous_mastery"`
	NewMastery      item.MasteryLevel `json:"new_mastery"`
	MasteryChanged  bool              `json:"mastery_changed"`
	AlreadyApplied  bool              `json:"already_applied"`
}

// SubmitReview applies one review submission.
func (h *Handler) SubmitReview(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = h.now()
	}

	result, err := h.processor.SubmitReview(c.Request.Context(), review.SubmitRequest{
		ItemID:           req.ItemID,
		Quality:          req.Quality,
		TimeSpentSeconds: req.TimeSpentSeconds,
		SubmittedAt:      req.SubmittedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidQuality):
			respondError(c, http.StatusBadRequest, "invalid_quality", err)
		case errors.Is(err, item.ErrNotFound):
			respondError(c, http.StatusNotFound, "item_not_found", err)
		case errors.Is(err, item.ErrConflict):
			respondError(c, http.StatusConflict, "conflict", err)
		default:
			h.logger.Error("failed to submit review", "item_id", req.ItemID, "error", err)
			respondError(c, http.StatusInternalServerError, "internal", err)
		}
		return
	}

	c.JSON(http.StatusOK, submitReviewResponse{
		Item:            result.Item,
		PreviousMastery: result.PreviousMastery,
		NewMastery:      result.NewMastery,
		MasteryChanged:  result.MasteryChanged,
		AlreadyApplied:  result.AlreadyApplied,
	})
}

// GetPerformance returns aggregate statistics over the requested window.
func (h *Handler) GetPerformance(c *gin.Context) {
	windowDays, ok := h.queryDays(c, "days", defaultStatisticsWindowDays)
	if !ok {
		return
	}

	now := h.now()
	events, err := h.events.Query(c.Request.Context(), now.AddDate(0, 0, -windowDays), time.Time{})
	if err != nil {
		h.logger.Error("failed to query review events", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeStatistics(events, items, windowDays, now))
}

// GetSchedule returns review time recommendations built from the full event log.
func (h *Handler) GetSchedule(c *gin.Context) {
	events, err := h.events.Query(c.Request.Context(), time.Time{}, time.Time{})
	if err != nil {
		h.logger.Error("failed to query review events", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusOK, analytics.RecommendSchedule(events))
}

// GetForecast returns the upcoming due-count forecast.
func (h *Handler) GetForecast(c *gin.Context) {
	horizonDays, ok := h.queryDays(c, "days", defaultForecastHorizonDays)
	if !ok {
		return
	}

	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": analytics.Forecast(items, horizonDays, h.now())})
}

// ListItems returns every tracked item.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createItemRequest struct {
	ID       string `json:"id" binding:"required"`
	ItemType string `json:"item_type"`
}

// CreateItem registers a new item for scheduling.
func (h *Handler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	it := item.New(req.ID, req.ItemType, h.now())
	if err := h.items.Create(c.Request.Context(), &it); err != nil {
		if errors.Is(err, item.ErrAlreadyExists) {
			respondError(c, http.StatusConflict, "already_exists", err)
			return
		}
		h.logger.Error("failed to create item", "item_id", req.ID, "error", err)
		respondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// queryDays parses a positive integer day-count query parameter. It writes
// the error response itself and reports false when the value is invalid.
func (h *Handler) queryDays(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("%s must be a positive integer, got %q", name, raw))
		return 0, false
	}
	return days, true
}
