package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"quotedesk/internal/comparison"
	"quotedesk/internal/domain"
	"quotedesk/internal/port"
	"quotedesk/internal/selection"
)

// CompareInput is the DTO for market comparison requests. When the requesting
// user has a saved selection for a document, the comparison uses the filtered
// view; otherwise the whole document participates.
type CompareInput struct {
	UserID        uuid.UUID
	DocumentIDs   []uuid.UUID
	CoverageTypes []string
}

// ComparisonService builds market-comparison datasets across quote documents.
type ComparisonService interface {
	Compare(ctx context.Context, input CompareInput) (*comparison.MarketComparison, error)
	ExportXLSX(ctx context.Context, input CompareInput) ([]byte, error)
}

type comparisonService struct {
	repo  port.QuoteDocumentRepository
	store port.SelectionStore
}

// NewComparisonService creates a new ComparisonService implementation.
func NewComparisonService(repo port.QuoteDocumentRepository, store port.SelectionStore) ComparisonService {
	return &comparisonService{repo: repo, store: store}
}

func (s *comparisonService) Compare(ctx context.Context, input CompareInput) (*comparison.MarketComparison, error) {
	records, err := s.repo.ListByIDs(ctx, input.DocumentIDs)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.ProcessedDocument, 0, len(records))
	for _, record := range records {
		if record.Status != domain.ProcessingStatusCompleted {
			log.Printf("comparisonService.Compare: skipping quote %s (status %s)", record.ID, record.Status)
			continue
		}

		var processed domain.ProcessedDocument
		if err := json.Unmarshal(record.ProcessedData, &processed); err != nil {
			return nil, fmt.Errorf("unmarshaling processed data for %s: %w", record.ID, err)
		}

		if sel, ok := s.store.Get(input.UserID.String(), record.ID.String()); ok && len(sel.SelectedPlans) > 0 {
			processed = *selection.FilterBySelection(&processed, sel.SelectedPlans)
		}
		docs = append(docs, processed)
	}

	return comparison.AggregateByCoverageType(docs, input.CoverageTypes), nil
}

func (s *comparisonService) ExportXLSX(ctx context.Context, input CompareInput) ([]byte, error) {
	result, err := s.Compare(ctx, input)
	if err != nil {
		return nil, err
	}
	return comparison.WriteXLSX(result)
}
