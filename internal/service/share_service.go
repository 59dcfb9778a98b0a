package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"quotedesk/internal/comparison"
	"quotedesk/internal/config"
	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

// defaultShareExpiry is applied when a share request names no expiry.
const defaultShareExpiry = 14 * 24 * time.Hour

// CreateShareInput is the DTO for creating a share link.
type CreateShareInput struct {
	CreatedBy      uuid.UUID
	CreatorName    string
	RecipientEmail string
	DocumentIDs    []uuid.UUID
	CoverageTypes  []string
	ExpiresIn      time.Duration
}

// ShareService lets brokers share a market comparison with a client by token.
type ShareService interface {
	Create(ctx context.Context, input CreateShareInput) (*domain.ShareLink, error)
	Resolve(ctx context.Context, token string) (*comparison.MarketComparison, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ShareLink, int, error)
	Delete(ctx context.Context, userID, linkID uuid.UUID) error
}

type shareService struct {
	links       port.ShareLinkRepository
	comparisons ComparisonService
	email       port.EmailSender
	frontendURL string
}

// NewShareService creates a new ShareService implementation.
func NewShareService(
	links port.ShareLinkRepository,
	comparisons ComparisonService,
	email port.EmailSender,
	cfg *config.EmailConfig,
) ShareService {
	return &shareService{
		links:       links,
		comparisons: comparisons,
		email:       email,
		frontendURL: cfg.FrontendURL,
	}
}

func (s *shareService) Create(ctx context.Context, input CreateShareInput) (*domain.ShareLink, error) {
	if len(input.DocumentIDs) == 0 {
		return nil, fmt.Errorf("share must include at least one document: %w", domain.ErrNotFound)
	}

	expiresIn := input.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultShareExpiry
	}

	docIDs, err := json.Marshal(input.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("marshaling document ids: %w", err)
	}
	coverageTypes, err := json.Marshal(input.CoverageTypes)
	if err != nil {
		return nil, fmt.Errorf("marshaling coverage types: %w", err)
	}

	link := &domain.ShareLink{
		ID:             uuid.New(),
		Token:          uuid.NewString(),
		CreatedBy:      input.CreatedBy,
		RecipientEmail: input.RecipientEmail,
		DocumentIDs:    docIDs,
		CoverageTypes:  coverageTypes,
		ExpiresAt:      time.Now().UTC().Add(expiresIn),
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}

	if input.RecipientEmail != "" {
		shareURL := fmt.Sprintf("%s/shared/%s", s.frontendURL, link.Token)
		if err := s.email.SendShareNotification(ctx, input.RecipientEmail, input.CreatorName, shareURL); err != nil {
			// The link exists; a failed notification is logged, not fatal.
			log.Printf("shareService.Create: failed to send notification for link %s: %v", link.ID, err)
		}
	}

	return link, nil
}

func (s *shareService) Resolve(ctx context.Context, token string) (*comparison.MarketComparison, error) {
	link, err := s.links.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if link.Expired(time.Now().UTC()) {
		return nil, domain.ErrShareLinkExpired
	}

	var docIDs []uuid.UUID
	if err := json.Unmarshal(link.DocumentIDs, &docIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling document ids for link %s: %w", link.ID, err)
	}
	var coverageTypes []string
	if err := json.Unmarshal(link.CoverageTypes, &coverageTypes); err != nil {
		return nil, fmt.Errorf("unmarshaling coverage types for link %s: %w", link.ID, err)
	}

	// Shared views use the creator's saved selections.
	return s.comparisons.Compare(ctx, CompareInput{
		UserID:        link.CreatedBy,
		DocumentIDs:   docIDs,
		CoverageTypes: coverageTypes,
	})
}

func (s *shareService) ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ShareLink, int, error) {
	return s.links.ListByCreator(ctx, userID, offset, limit)
}

func (s *shareService) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	links, _, err := s.links.ListByCreator(ctx, userID, 0, 1000)
	if err != nil {
		return err
	}
	for _, link := range links {
		if link.ID == linkID {
			return s.links.Delete(ctx, linkID)
		}
	}
	return domain.ErrForbidden
}
