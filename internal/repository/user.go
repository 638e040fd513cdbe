package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ride-tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, avatar_b64, preferences, created_at, updated_at`

// ErrUserNotFound is returned when the user row does not exist
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles database operations for the user profile
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfMissing inserts the user unless a row with the same id exists
func (r *UserRepository) CreateIfMissing(ctx context.Context, u *models.UserProfile) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.AvatarB64, u.Preferences, u.CreatedAt.Time, u.UpdatedAt.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateProfile writes only the supplied fields and refreshes updated_at
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd models.UserProfileUpdate, updatedAt time.Time) (*models.UserProfile, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.AvatarB64 != nil {
		set("avatar_b64", *upd.AvatarB64)
	}
	set("updated_at", updatedAt)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// MergePreferences shallow-merges patch into the stored preferences in a
// single statement and returns the result.
func (r *UserRepository) MergePreferences(ctx context.Context, id string, patch models.UserSettingsUpdate, updatedAt time.Time) (*models.Preferences, error) {
	doc, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := `
		UPDATE users
		SET preferences = preferences || $1::jsonb, updated_at = $2
		WHERE id = $3
		RETURNING preferences
	`
	var prefs models.Preferences
	if err := r.db.QueryRow(ctx, query, doc, updatedAt, id).Scan(&prefs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return &prefs, nil
}

func scanUser(row pgx.Row) (*models.UserProfile, error) {
	var (
		u                    models.UserProfile
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarB64, &u.Preferences, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = models.NewTimestamp(createdAt)
	u.UpdatedAt = models.NewTimestamp(updatedAt)
	return &u, nil
}
