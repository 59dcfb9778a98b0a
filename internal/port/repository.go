package port

import (
	"context"

	"github.com/google/uuid"

	"quotedesk/internal/domain"
)

// QuoteDocumentRepository defines the contract for quote document persistence.
type QuoteDocumentRepository interface {
	Create(ctx context.Context, doc *domain.QuoteDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error)
	ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.QuoteDocument, error)
	UpdateProcessingResult(ctx context.Context, doc *domain.QuoteDocument) error
	MarkFailed(ctx context.Context, id uuid.UUID, stage, message string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShareLinkRepository defines the contract for share link persistence.
type ShareLinkRepository interface {
	Create(ctx context.Context, link *domain.ShareLink) error
	GetByToken(ctx context.Context, token string) (*domain.ShareLink, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ShareLink, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
