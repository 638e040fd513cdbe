package handlers

import (
	"context"

	"ride-tracker-backend/internal/models"
	"ride-tracker-backend/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockActivityService struct {
	mock.Mock
}

func (m *mockActivityService) Create(ctx context.Context, in models.ActivityCreate) (*models.Activity, error) {
	args := m.Called(ctx, in)
	if a := args.Get(0); a != nil {
		return a.(*models.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockActivityService) List(ctx context.Context, limit, offset int) (*models.ActivityPage, error) {
	args := m.Called(ctx, limit, offset)
	if p := args.Get(0); p != nil {
		return p.(*models.ActivityPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*models.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, id string) (*services.ExportResult, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*services.ExportResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetOrCreateDefault(ctx context.Context) (*models.UserProfile, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, upd models.UserProfileUpdate) (*models.UserProfile, error) {
	args := m.Called(ctx, upd)
	if u := args.Get(0); u != nil {
		return u.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) GetSettings(ctx context.Context) (*models.Preferences, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.(*models.Preferences), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) UpdateSettings(ctx context.Context, patch models.UserSettingsUpdate) (*models.Preferences, error) {
	args := m.Called(ctx, patch)
	if p := args.Get(0); p != nil {
		return p.(*models.Preferences), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockContactSender struct {
	mock.Mock
}

func (m *mockContactSender) Send(ctx context.Context, email, subject, message string) bool {
	args := m.Called(ctx, email, subject, message)
	return args.Bool(0)
}
