package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"ride-tracker-backend/internal/models"
	"ride-tracker-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ActivityService is the activity use-case surface the handlers need
type ActivityService interface {
	Create(ctx context.Context, in models.ActivityCreate) (*models.Activity, error)
	List(ctx context.Context, limit, offset int) (*models.ActivityPage, error)
	Get(ctx context.Context, id string) (*models.Activity, error)
}

// ActivityExporter produces downloadable activity tracks
type ActivityExporter interface {
	Export(ctx context.Context, activityID string) (*services.ExportResult, error)
}

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activityService ActivityService
	exporter        ActivityExporter
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService ActivityService, exporter ActivityExporter) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		exporter:        exporter,
	}
}

// CreateActivity handles POST /api/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityCreate
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "create_activity")
		return
	}

	activity, err := h.activityService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "create_activity")
		return
	}

	log.Info().
		Str("activity_id", activity.ID).
		Int("points", activity.PointsEarned).
		Msg("Activity saved")

	respondOK(w, true, map[string]any{"activity": activity}, "Activity saved")
}

// ListActivities handles GET /api/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultListLimit)
	if err != nil {
		respondServiceError(w, r, err, "list_activities")
		return
	}
	offset, err := queryInt(r, "offset", services.DefaultListOffset)
	if err != nil {
		respondServiceError(w, r, err, "list_activities")
		return
	}

	page, err := h.activityService.List(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, err, "list_activities")
		return
	}

	respondOK(w, true, page, "OK")
}

// GetActivity handles GET /api/activities/{activity_id}
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activity_id")

	activity, err := h.activityService.Get(r.Context(), activityID)
	if err != nil {
		respondServiceError(w, r, err, "get_activity")
		return
	}

	respondOK(w, true, map[string]any{"activity": activity}, "OK")
}

// ExportActivity handles POST /api/activities/{activity_id}/export
func (h *ActivityHandler) ExportActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "activity_id")
	if h.exporter == nil {
		respondServiceError(w, r, models.ErrExportUnavailable, "export_activity")
		return
	}

	result, err := h.exporter.Export(r.Context(), activityID)
	if err != nil {
		respondServiceError(w, r, err, "export_activity")
		return
	}

	log.Info().
		Str("activity_id", activityID).
		Str("key", result.Key).
		Msg("Activity exported")

	respondOK(w, true, result, "Export ready")
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, name)
	}
	return v, nil
}
