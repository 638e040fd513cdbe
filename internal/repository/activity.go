package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ride-tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const activityColumns = `id, name, distance_km, duration_sec, avg_kmh, start_time, path,
		notes, private, points_earned, created_at, updated_at`

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Name, a.DistanceKm, a.DurationSec, a.AvgKmh, a.StartTime.Time, encodePath(a.Path),
		a.Notes, a.Private, a.PointsEarned, a.CreatedAt.Time, a.UpdatedAt.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	a, err := scanActivity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// List returns activities newest first together with the total count
func (r *ActivityRepository) List(ctx context.Context, limit, offset int) ([]*models.Activity, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `
		SELECT ` + activityColumns + `
		FROM activities
		ORDER BY created_at DESC, seq DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, total, nil
}

// scanActivity converts a stored row back into the wire model. The seq
// column is never selected.
func scanActivity(row pgx.Row) (*models.Activity, error) {
	var (
		a                               models.Activity
		startTime, createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.DistanceKm, &a.DurationSec, &a.AvgKmh, &startTime, &a.Path,
		&a.Notes, &a.Private, &a.PointsEarned, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.StartTime = models.NewTimestamp(startTime)
	a.CreatedAt = models.NewTimestamp(createdAt)
	a.UpdatedAt = models.NewTimestamp(updatedAt)
	a.Path = encodePath(a.Path)
	return &a, nil
}

// encodePath keeps an absent path as an empty JSON array rather than null
func encodePath(path []models.TelemetryPoint) []models.TelemetryPoint {
	if path == nil {
		return []models.TelemetryPoint{}
	}
	return path
}
