package submission_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/formintake/modules/submission"
)

// MockStorage is a mock implementation of submission.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, s *submission.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStorage) List(ctx context.Context, f submission.ListFilter) ([]submission.Submission, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]submission.Submission), args.Error(1)
}

func (m *MockStorage) ListPublic(ctx context.Context, f submission.PublicFilter) ([]submission.PublicSubmission, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]submission.PublicSubmission), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}
