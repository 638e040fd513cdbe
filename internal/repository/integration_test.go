//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"ride-tracker-backend/internal/models"
	"ride-tracker-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "rides_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/postgres?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := repository.Connect(ctx, dsn, "rides_test")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, repository.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE activities, users`)
	require.NoError(t, err)
	return pool
}

func newActivity(name string, createdAt time.Time) *models.Activity {
	ts := models.NewTimestamp(createdAt)
	return &models.Activity{
		ID:          uuid.New().String(),
		Name:        &name,
		DistanceKm:  2.5,
		DurationSec: 600,
		AvgKmh:      15,
		StartTime:   models.NewTimestamp(time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)),
		Path: []models.TelemetryPoint{
			{Lat: 37.77, Lng: -122.41, T: 1720000000},
			{Lat: 37.7705, Lng: -122.409, T: 1720000060},
		},
		PointsEarned: 45,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func TestActivityRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewActivityRepository(newPool(t))

	a := newActivity("Test Ride", time.Now())
	notes := "unit test"
	a.Notes = &notes
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, *a.Name, *got.Name)
	assert.Equal(t, *a.Notes, *got.Notes)
	assert.Equal(t, a.Path, got.Path)
	assert.Equal(t, a.PointsEarned, got.PointsEarned)
	assert.True(t, a.StartTime.Equal(got.StartTime.Time))
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt.Time))
	assert.Equal(t, a.CreatedAt.String(), got.CreatedAt.String())

	_, err = repo.GetByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, models.ErrActivityNotFound)
}

func TestActivityRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewActivityRepository(newPool(t))

	base := time.Now()
	var ids []string
	for i, name := range []string{"A", "B", "C"} {
		a := newActivity(name, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Create(ctx, a))
		ids = append(ids, a.ID)
	}

	items, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[1], items[1].ID)

	items, total, err = repo.List(ctx, 20, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, ids[0], items[0].ID)
}

func TestActivityRepository_ListSameCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewActivityRepository(newPool(t))

	now := time.Now()
	first := newActivity("first", now)
	second := newActivity("second", now)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	items, _, err := repo.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestUserRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	pool := newPool(t)
	repo := repository.NewUserRepository(pool)

	now := models.NewTimestamp(time.Now())
	avatar := "aGVsbG8="
	u := &models.UserProfile{
		ID:          models.DefaultUserID,
		Name:        "Rider",
		Email:       "rider@example.com",
		AvatarB64:   &avatar,
		Preferences: models.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateIfMissing(ctx, u))

	other := *u
	other.Name = "Impostor"
	require.NoError(t, repo.CreateIfMissing(ctx, &other))

	got, err := repo.GetByID(ctx, models.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, "Rider", got.Name)
	assert.Equal(t, models.DefaultPreferences(), got.Preferences)

	name := "Ana"
	updated, err := repo.UpdateProfile(ctx, models.DefaultUserID, models.UserProfileUpdate{Name: &name}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "rider@example.com", updated.Email)
	require.NotNil(t, updated.AvatarB64)
	assert.Equal(t, avatar, *updated.AvatarB64)

	units := "mi"
	prefs, err := repo.MergePreferences(ctx, models.DefaultUserID, models.UserSettingsUpdate{Units: &units}, time.Now())
	require.NoError(t, err)
	want := models.DefaultPreferences()
	want.Units = "mi"
	assert.Equal(t, want, *prefs)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}
