package services

import (
	"context"
	"fmt"
	"time"

	"ride-tracker-backend/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultListLimit  = 20
	DefaultListOffset = 0
)

// ActivityStore persists activities
type ActivityStore interface {
	Create(ctx context.Context, a *models.Activity) error
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context, limit, offset int) ([]*models.Activity, int64, error)
}

// ActivityPublisher is notified after an activity is saved
type ActivityPublisher interface {
	PublishActivity(a *models.Activity)
}

// ActivityService handles activity-related business logic
type ActivityService struct {
	store     ActivityStore
	publisher ActivityPublisher
	now       func() time.Time
}

// NewActivityService creates a new activity service. publisher may be nil.
func NewActivityService(store ActivityStore, publisher ActivityPublisher) *ActivityService {
	return &ActivityService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create scores and stores a new activity
func (s *ActivityService) Create(ctx context.Context, in models.ActivityCreate) (*models.Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := models.NewTimestamp(s.now())
	path := in.Path
	if path == nil {
		path = []models.TelemetryPoint{}
	}

	activity := &models.Activity{
		ID:           uuid.New().String(),
		Name:         stripNUL(in.Name),
		DistanceKm:   *in.DistanceKm,
		DurationSec:  *in.DurationSec,
		AvgKmh:       *in.AvgKmh,
		StartTime:    models.NewTimestamp(in.StartTime.Time),
		Path:         path,
		Notes:        stripNUL(in.Notes),
		Private:      in.Private,
		PointsEarned: ComputePoints(*in.DistanceKm, *in.AvgKmh, *in.DurationSec),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishActivity(activity)
	}

	return activity, nil
}

// List returns one page of activities, newest first
func (s *ActivityService) List(ctx context.Context, limit, offset int) (*models.ActivityPage, error) {
	items, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.ActivityPage{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// Get returns a single activity or models.ErrActivityNotFound
func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	return s.store.GetByID(ctx, id)
}
