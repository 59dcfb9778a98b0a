package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quotedesk/internal/comparison"
	"quotedesk/internal/service"
)

// MockComparisonService is a mock implementation of service.ComparisonService.
type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) Compare(ctx context.Context, input service.CompareInput) (*comparison.MarketComparison, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comparison.MarketComparison), args.Error(1)
}

func (m *MockComparisonService) ExportXLSX(ctx context.Context, input service.CompareInput) ([]byte, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
