package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bomflow/internal/bom"
	"bomflow/internal/domain"
	"bomflow/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) CreateImport(ctx context.Context, input service.ImportInput) (*domain.ImportJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportJob), args.Error(1)
}

func (m *MockImportService) List(ctx context.Context, offset, limit int) ([]domain.ImportJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImportJob), args.Int(1), args.Error(2)
}

func (m *MockImportService) GetResult(ctx context.Context, id uuid.UUID) (*bom.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bom.Result), args.Error(1)
}

func (m *MockImportService) ProcessImport(ctx context.Context, job *domain.ImportJob, maxAttempts int) {
	m.Called(ctx, job, maxAttempts)
}
