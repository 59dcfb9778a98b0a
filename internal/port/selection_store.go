package port

import "quotedesk/internal/domain"

// SelectionStore holds each user's plan-selection working set. Save replaces
// the user's entry for a document wholesale (last-writer-wins); keys are
// disjoint per user so no cross-user coordination is needed.
type SelectionStore interface {
	Save(userID, documentID string, sel domain.PlanSelection)
	Get(userID, documentID string) (domain.PlanSelection, bool)
	GetAll(userID string) map[string]domain.PlanSelection
	Remove(userID, documentID string)
	Clear(userID string)
}
