package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

type quoteDocumentRepo struct {
	db *sqlx.DB
}

// NewQuoteDocumentRepo creates a new PostgreSQL-backed QuoteDocumentRepository.
func NewQuoteDocumentRepo(db *sqlx.DB) port.QuoteDocumentRepository {
	return &quoteDocumentRepo{db: db}
}

func (r *quoteDocumentRepo) Create(ctx context.Context, doc *domain.QuoteDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO quote_documents
		(id, uploaded_by, file_name, original_name, file_type, file_size, content_type,
		 s3_bucket, s3_key, carrier_name, category, status, failed_stage, processing_error,
		 processed_data, valid_coverages, invalid_coverages, degraded, processed_at,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.UploadedBy, doc.FileName, doc.OriginalName, doc.FileType, doc.FileSize,
		doc.ContentType, doc.S3Bucket, doc.S3Key, doc.CarrierName, doc.Category, doc.Status,
		doc.FailedStage, doc.ProcessingError, doc.ProcessedData, doc.ValidCoverages,
		doc.InvalidCoverages, doc.Degraded, doc.ProcessedAt, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quoteDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *quoteDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDocument, error) {
	var doc domain.QuoteDocument
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM quote_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("quoteDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *quoteDocumentRepo) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.QuoteDocument, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM quote_documents WHERE uploaded_by = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("quoteDocumentRepo.ListByUploader count: %w", err)
	}

	var docs []domain.QuoteDocument
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM quote_documents
		 WHERE uploaded_by = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("quoteDocumentRepo.ListByUploader: %w", err)
	}
	return docs, total, nil
}

func (r *quoteDocumentRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.QuoteDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM quote_documents WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("quoteDocumentRepo.ListByIDs: %w", err)
	}
	query = r.db.Rebind(query)

	var docs []domain.QuoteDocument
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("quoteDocumentRepo.ListByIDs: %w", err)
	}
	return docs, nil
}

// UpdateProcessingResult replaces the stored processing outcome wholesale.
// A re-run never mutates processed_data in place.
func (r *quoteDocumentRepo) UpdateProcessingResult(ctx context.Context, doc *domain.QuoteDocument) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE quote_documents
		 SET status = $1, failed_stage = '', processing_error = '', processed_data = $2,
		     valid_coverages = $3, invalid_coverages = $4, degraded = $5,
		     processed_at = $6, updated_at = $7
		 WHERE id = $8`,
		doc.Status, doc.ProcessedData, doc.ValidCoverages, doc.InvalidCoverages,
		doc.Degraded, doc.ProcessedAt, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("quoteDocumentRepo.UpdateProcessingResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quoteDocumentRepo) MarkFailed(ctx context.Context, id uuid.UUID, stage, message string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quote_documents
		 SET status = $1, failed_stage = $2, processing_error = $3, updated_at = $4
		 WHERE id = $5`,
		domain.ProcessingStatusFailed, stage, message, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("quoteDocumentRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quoteDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM quote_documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("quoteDocumentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
