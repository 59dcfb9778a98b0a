package selection

import "quotedesk/internal/domain"

// quoteTypePriority orders the quote-type tags used for document-type
// inference when selected plans disagree.
var quoteTypePriority = []string{"Current Premium", "Renegotiated", "Alternative"}

// FilterBySelection derives the view of a processed document restricted to
// the selected plan option names. Same shape out as in; the input is never
// mutated. The function is pure and idempotent: filtering twice with the same
// selection equals filtering once, and selecting every plan name retains
// every row.
func FilterBySelection(data *domain.ProcessedDocument, selectedPlans []string) *domain.ProcessedDocument {
	if data == nil {
		return nil
	}

	selected := make(map[string]struct{}, len(selectedPlans))
	for _, name := range selectedPlans {
		selected[name] = struct{}{}
	}

	out := &domain.ProcessedDocument{
		Metadata:  data.Metadata,
		PlanNotes: data.PlanNotes,
	}

	// New shape: keep overview rows for selected plans, and within each
	// breakdown row keep only the selected plans' cells.
	if len(data.Metadata.HighLevelOverview) > 0 {
		out.Metadata.HighLevelOverview = nil
		for _, row := range data.Metadata.HighLevelOverview {
			if _, ok := selected[row.PlanOption]; ok {
				out.Metadata.HighLevelOverview = append(out.Metadata.HighLevelOverview, row)
			}
		}
		out.Metadata.GranularBreakdown = nil
		for _, row := range data.Metadata.GranularBreakdown {
			filtered := domain.BreakdownRow{BenefitType: row.BenefitType}
			for _, cell := range row.CarrierData {
				if _, ok := selected[cell.PlanOption]; ok {
					filtered.CarrierData = append(filtered.CarrierData, cell)
				}
			}
			out.Metadata.GranularBreakdown = append(out.Metadata.GranularBreakdown, filtered)
		}
	}

	// Legacy shape.
	if len(data.Metadata.PlanOptions) > 0 {
		out.Metadata.PlanOptions = nil
		for _, opt := range data.Metadata.PlanOptions {
			if _, ok := selected[opt.PlanOptionName]; ok {
				out.Metadata.PlanOptions = append(out.Metadata.PlanOptions, opt)
			}
		}
	}
	if len(data.Metadata.AllCoverages) > 0 {
		out.Metadata.AllCoverages = nil
		for _, cov := range data.Metadata.AllCoverages {
			if _, ok := selected[cov.PlanOptionName]; ok {
				out.Metadata.AllCoverages = append(out.Metadata.AllCoverages, cov)
			}
		}
	}

	out.Coverages = make([]domain.CoverageEntry, 0, len(data.Coverages))
	for _, cov := range data.Coverages {
		if _, ok := selected[cov.PlanOptionName]; ok {
			out.Coverages = append(out.Coverages, cov)
		}
	}

	return out
}

// InferDocumentType resolves a document's overall type from the quote-type
// tags of the selected plans. When tags disagree, Current Premium wins over
// Renegotiated, which wins over Alternative.
func InferDocumentType(plans []domain.PlanSummary, selectedPlans []string) string {
	selected := make(map[string]struct{}, len(selectedPlans))
	for _, name := range selectedPlans {
		selected[name] = struct{}{}
	}

	present := make(map[string]bool)
	for _, plan := range plans {
		if _, ok := selected[plan.PlanOptionName]; ok && plan.QuoteType != "" {
			present[plan.QuoteType] = true
		}
	}
	for _, quoteType := range quoteTypePriority {
		if present[quoteType] {
			return quoteType
		}
	}
	return ""
}

// IncludesHSA reports whether any selected plan has HSA enabled.
func IncludesHSA(plans []domain.PlanSummary, selectedPlans []string) bool {
	selected := make(map[string]struct{}, len(selectedPlans))
	for _, name := range selectedPlans {
		selected[name] = struct{}{}
	}
	for _, plan := range plans {
		if _, ok := selected[plan.PlanOptionName]; ok && plan.HSAIncluded {
			return true
		}
	}
	return false
}
