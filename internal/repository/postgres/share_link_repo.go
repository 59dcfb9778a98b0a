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

type shareLinkRepo struct {
	db *sqlx.DB
}

// NewShareLinkRepo creates a new PostgreSQL-backed ShareLinkRepository.
func NewShareLinkRepo(db *sqlx.DB) port.ShareLinkRepository {
	return &shareLinkRepo{db: db}
}

func (r *shareLinkRepo) Create(ctx context.Context, link *domain.ShareLink) error {
	link.CreatedAt = time.Now().UTC()

	query := `INSERT INTO share_links
		(id, token, created_by, recipient_email, document_ids, coverage_types, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		link.ID, link.Token, link.CreatedBy, link.RecipientEmail,
		link.DocumentIDs, link.CoverageTypes, link.ExpiresAt, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("shareLinkRepo.Create: %w", err)
	}
	return nil
}

func (r *shareLinkRepo) GetByToken(ctx context.Context, token string) (*domain.ShareLink, error) {
	var link domain.ShareLink
	err := r.db.GetContext(ctx, &link, "SELECT * FROM share_links WHERE token = $1", token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("shareLinkRepo.GetByToken: %w", err)
	}
	return &link, nil
}

func (r *shareLinkRepo) ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ShareLink, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM share_links WHERE created_by = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("shareLinkRepo.ListByCreator count: %w", err)
	}

	var links []domain.ShareLink
	err = r.db.SelectContext(ctx, &links,
		`SELECT * FROM share_links
		 WHERE created_by = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("shareLinkRepo.ListByCreator: %w", err)
	}
	return links, total, nil
}

func (r *shareLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM share_links WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("shareLinkRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
