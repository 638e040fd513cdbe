package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"ride-tracker-backend/internal/models"
	"ride-tracker-backend/internal/repository"
)

const defaultUserName = "Rider"

// UserStore persists the singleton user
type UserStore interface {
	CreateIfMissing(ctx context.Context, u *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, upd models.UserProfileUpdate, updatedAt time.Time) (*models.UserProfile, error)
	MergePreferences(ctx context.Context, id string, patch models.UserSettingsUpdate, updatedAt time.Time) (*models.Preferences, error)
}

// UserService handles profile and settings logic for the implicit user
type UserService struct {
	store UserStore
	now   func() time.Time
}

// NewUserService creates a new user service
func NewUserService(store UserStore) *UserService {
	return &UserService{
		store: store,
		now:   time.Now,
	}
}

// GetOrCreateDefault returns the user, creating it with defaults on first use
func (s *UserService) GetOrCreateDefault(ctx context.Context) (*models.UserProfile, error) {
	user, err := s.store.GetByID(ctx, models.DefaultUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	now := models.NewTimestamp(s.now())
	defaults := &models.UserProfile{
		ID:          models.DefaultUserID,
		Name:        defaultUserName,
		Preferences: models.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// a concurrent request may win the insert; either way the row exists afterwards
	if err := s.store.CreateIfMissing(ctx, defaults); err != nil {
		return nil, err
	}

	user, err = s.store.GetByID(ctx, models.DefaultUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the supplied profile fields
func (s *UserService) UpdateProfile(ctx context.Context, upd models.UserProfileUpdate) (*models.UserProfile, error) {
	upd.Name = stripNUL(upd.Name)
	upd.Email = stripNUL(upd.Email)
	upd.AvatarB64 = stripNUL(upd.AvatarB64)
	if upd.AvatarB64 != nil && utf8.RuneCountInString(*upd.AvatarB64) > models.MaxAvatarLength {
		return nil, models.ErrAvatarTooLarge
	}

	user, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return user, nil
	}

	return s.store.UpdateProfile(ctx, user.ID, upd, s.now().UTC().Truncate(time.Microsecond))
}

// GetSettings returns the user's preferences
func (s *UserService) GetSettings(ctx context.Context) (*models.Preferences, error) {
	user, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	return &user.Preferences, nil
}

// UpdateSettings merges the supplied keys into the stored preferences
func (s *UserService) UpdateSettings(ctx context.Context, patch models.UserSettingsUpdate) (*models.Preferences, error) {
	patch.Theme = stripNUL(patch.Theme)
	patch.Units = stripNUL(patch.Units)
	user, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return &user.Preferences, nil
	}

	return s.store.MergePreferences(ctx, user.ID, patch, s.now().UTC().Truncate(time.Microsecond))
}
