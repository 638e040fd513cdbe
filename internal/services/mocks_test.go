package services

import (
	"context"
	"time"

	"ride-tracker-backend/internal/models"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

type mockActivityStore struct {
	mock.Mock
}

func (m *mockActivityStore) Create(ctx context.Context, a *models.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockActivityStore) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*models.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockActivityStore) List(ctx context.Context, limit, offset int) ([]*models.Activity, int64, error) {
	args := m.Called(ctx, limit, offset)
	items, _ := args.Get(0).([]*models.Activity)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishActivity(a *models.Activity) {
	m.Called(a)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateIfMissing(ctx context.Context, u *models.UserProfile) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id string, upd models.UserProfileUpdate, updatedAt time.Time) (*models.UserProfile, error) {
	args := m.Called(ctx, id, upd, updatedAt)
	if u := args.Get(0); u != nil {
		return u.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) MergePreferences(ctx context.Context, id string, patch models.UserSettingsUpdate, updatedAt time.Time) (*models.Preferences, error) {
	args := m.Called(ctx, id, patch, updatedAt)
	if p := args.Get(0); p != nil {
		return p.(*models.Preferences), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*v4.PresignedHTTPRequest), args.Error(1)
	}
	return nil, args.Error(1)
}
