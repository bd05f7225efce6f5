package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bomflow/internal/domain"
)

// MockImportJobRepo is a mock implementation of port.ImportJobRepository.
type MockImportJobRepo struct {
	mock.Mock
}

func (m *MockImportJobRepo) Create(ctx context.Context, job *domain.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportJobRepo) List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImportJob), args.Int(1), args.Error(2)
}

func (m *MockImportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportJob), args.Error(1)
}

func (m *MockImportJobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, result json.RawMessage, itemCount int) error {
	args := m.Called(ctx, id, result, itemCount)
	return args.Error(0)
}

func (m *MockImportJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, result json.RawMessage) error {
	args := m.Called(ctx, id, errMsg, result)
	return args.Error(0)
}

func (m *MockImportJobRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
