package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/domain"
	"quotedesk/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Upload(ctx context.Context, input service.UploadQuoteInput) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteService) ImportBatch(ctx context.Context, inputs []service.UploadQuoteInput) []service.ImportItemResult {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.ImportItemResult)
}

func (m *MockQuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteService) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuoteDocument), args.Int(1), args.Error(2)
}

func (m *MockQuoteService) GetProcessedData(ctx context.Context, id uuid.UUID) (*domain.ProcessedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedDocument), args.Error(1)
}

func (m *MockQuoteService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockQuoteService) Reprocess(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteService) ProcessDocument(ctx context.Context, doc *domain.QuoteDocument) {
	m.Called(ctx, doc)
}
