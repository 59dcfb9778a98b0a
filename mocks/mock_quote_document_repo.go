package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotedesk/internal/domain"
)

// MockQuoteDocumentRepository is a mock implementation of port.QuoteDocumentRepository.
type MockQuoteDocumentRepository struct {
	mock.Mock
}

func (m *MockQuoteDocumentRepository) Create(ctx context.Context, doc *domain.QuoteDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockQuoteDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteDocumentRepository) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.QuoteDocument), args.Int(1), args.Error(2)
}

func (m *MockQuoteDocumentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.QuoteDocument, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteDocument), args.Error(1)
}

func (m *MockQuoteDocumentRepository) UpdateProcessingResult(ctx context.Context, doc *domain.QuoteDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockQuoteDocumentRepository) MarkFailed(ctx context.Context, id uuid.UUID, stage, message string) error {
	args := m.Called(ctx, id, stage, message)
	return args.Error(0)
}

func (m *MockQuoteDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
