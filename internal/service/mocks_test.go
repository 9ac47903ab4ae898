package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetRole(ctx context.Context, userID string) (model.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Role), args.Error(1)
}

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Find(ctx context.Context, taskID string) (*model.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, taskID string, status model.TaskStatus, completedAt string) (*model.Task, error) {
	args := m.Called(ctx, taskID, status, completedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

// MockScreenshotRepository is a mock implementation of repository.ScreenshotRepository.
type MockScreenshotRepository struct {
	mock.Mock
}

func (m *MockScreenshotRepository) Create(ctx context.Context, shot *model.Screenshot) (*model.Screenshot, error) {
	args := m.Called(ctx, shot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Screenshot), args.Error(1)
}

// MockIdentityProvider is a mock implementation of IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string) (*supabase.AuthUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supabase.AuthUser), args.Error(1)
}

func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supabase.Session), args.Error(1)
}

// MockAdminDirectory is a mock implementation of AdminDirectory.
type MockAdminDirectory struct {
	mock.Mock
}

func (m *MockAdminDirectory) AdminListUsers(ctx context.Context) ([]supabase.AuthUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]supabase.AuthUser), args.Error(1)
}

// MockObjectStore is a mock implementation of ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) RemoveObject(ctx context.Context, bucket, path string) error {
	args := m.Called(ctx, bucket, path)
	return args.Error(0)
}

func (m *MockObjectStore) PublicObjectURL(bucket, path string) string {
	args := m.Called(bucket, path)
	return args.String(0)
}

func (m *MockObjectStore) SignObjectURL(ctx context.Context, bucket, path string, expiresIn int) (string, error) {
	args := m.Called(ctx, bucket, path, expiresIn)
	return args.String(0), args.Error(1)
}
