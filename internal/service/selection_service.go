package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"quotedesk/internal/domain"
	"quotedesk/internal/pipeline"
	"quotedesk/internal/port"
	"quotedesk/internal/selection"
)

// SaveSelectionInput is the DTO for saving a user's plan selection.
type SaveSelectionInput struct {
	UserID        uuid.UUID
	DocumentID    uuid.UUID
	SelectedPlans []string
	HSADetails    map[string]any
}

// SelectionService manages each user's plan-selection working set. The
// filtered view is derived on every save and always recomputable from the
// stored document, never a source of truth.
type SelectionService interface {
	Save(ctx context.Context, input SaveSelectionInput) (*domain.PlanSelection, error)
	Get(ctx context.Context, userID, documentID uuid.UUID) (*domain.PlanSelection, error)
	GetAll(ctx context.Context, userID uuid.UUID) (map[string]domain.PlanSelection, error)
	Remove(ctx context.Context, userID, documentID uuid.UUID) error
	Plans(ctx context.Context, documentID uuid.UUID) ([]domain.PlanSummary, error)
}

type selectionService struct {
	quotes QuoteService
	store  port.SelectionStore
}

// NewSelectionService creates a new SelectionService implementation.
func NewSelectionService(quotes QuoteService, store port.SelectionStore) SelectionService {
	return &selectionService{quotes: quotes, store: store}
}

func (s *selectionService) Save(ctx context.Context, input SaveSelectionInput) (*domain.PlanSelection, error) {
	if len(input.SelectedPlans) == 0 {
		return nil, domain.ErrEmptySelection
	}

	processed, err := s.quotes.GetProcessedData(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	plans := pipeline.NormalizePlans(&processed.Metadata)
	filtered := selection.FilterBySelection(processed, input.SelectedPlans)

	sel := domain.PlanSelection{
		DocumentID:    input.DocumentID.String(),
		SelectedPlans: input.SelectedPlans,
		DocumentType:  selection.InferDocumentType(plans, input.SelectedPlans),
		IncludeHSA:    selection.IncludesHSA(plans, input.SelectedPlans),
		HSADetails:    input.HSADetails,
		FilteredData:  filtered,
	}

	// Full replace: a concurrent save from another tab simply wins or loses
	// whole, never merges.
	s.store.Save(input.UserID.String(), input.DocumentID.String(), sel)

	log.Printf("selectionService.Save: user %s selected %d plans for quote %s (type=%q hsa=%t)",
		input.UserID, len(input.SelectedPlans), input.DocumentID, sel.DocumentType, sel.IncludeHSA)

	return &sel, nil
}

func (s *selectionService) Get(ctx context.Context, userID, documentID uuid.UUID) (*domain.PlanSelection, error) {
	sel, ok := s.store.Get(userID.String(), documentID.String())
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sel, nil
}

func (s *selectionService) GetAll(ctx context.Context, userID uuid.UUID) (map[string]domain.PlanSelection, error) {
	return s.store.GetAll(userID.String()), nil
}

func (s *selectionService) Remove(ctx context.Context, userID, documentID uuid.UUID) error {
	s.store.Remove(userID.String(), documentID.String())
	return nil
}

// Plans returns the canonical per-plan-option summaries for a processed quote.
func (s *selectionService) Plans(ctx context.Context, documentID uuid.UUID) ([]domain.PlanSummary, error) {
	processed, err := s.quotes.GetProcessedData(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return pipeline.NormalizePlans(&processed.Metadata), nil
}
