package handlers

import (
	"context"
	"net/http"

	"ride-tracker-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// UserService is the profile and settings surface the handlers need
type UserService interface {
	GetOrCreateDefault(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.UserProfileUpdate) (*models.UserProfile, error)
	GetSettings(ctx context.Context) (*models.Preferences, error)
	UpdateSettings(ctx context.Context, patch models.UserSettingsUpdate) (*models.Preferences, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile handles GET /api/user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetOrCreateDefault(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "get_profile")
		return
	}

	respondOK(w, true, map[string]any{"profile": profile}, "OK")
}

// UpdateProfile handles PUT /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UserProfileUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "update_profile")
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "update_profile")
		return
	}

	log.Info().
		Bool("name", req.Name != nil).
		Bool("email", req.Email != nil).
		Bool("avatar", req.AvatarB64 != nil).
		Msg("Profile updated")

	respondOK(w, true, map[string]any{"profile": profile}, "Profile updated")
}

// GetSettings handles GET /api/user/settings
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.userService.GetSettings(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "get_settings")
		return
	}

	respondOK(w, true, map[string]any{"settings": settings}, "OK")
}

// UpdateSettings handles PUT /api/user/settings
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UserSettingsUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "update_settings")
		return
	}

	settings, err := h.userService.UpdateSettings(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, "update_settings")
		return
	}

	respondOK(w, true, map[string]any{"settings": settings}, "Settings updated")
}
