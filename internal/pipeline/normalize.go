package pipeline

import "quotedesk/internal/domain"

// Shape tags which historical extraction schema a document's metadata uses.
// The shape is resolved exactly once here; everything downstream operates on
// the canonical form only.
type Shape string

const (
	NewShape    Shape = "new"
	LegacyShape Shape = "legacy"
	NoShape     Shape = "none"
)

// DetectShape applies the detection rule: presence of highLevelOverview
// selects the new shape even when legacy planOptions are also present.
func DetectShape(meta *domain.Metadata) Shape {
	if meta == nil {
		return NoShape
	}
	if len(meta.HighLevelOverview) > 0 {
		return NewShape
	}
	if len(meta.PlanOptions) > 0 || len(meta.AllCoverages) > 0 {
		return LegacyShape
	}
	return NoShape
}

// NormalizePlans derives the canonical per-plan-option summaries from either
// metadata shape. The derivation is pure and order-stable: output follows the
// declaration order of the source rows, never map iteration order. A document
// with neither shape marker yields an empty result.
func NormalizePlans(meta *domain.Metadata) []domain.PlanSummary {
	switch DetectShape(meta) {
	case NewShape:
		return normalizeNewShape(meta)
	case LegacyShape:
		return normalizeLegacyShape(meta)
	default:
		return []domain.PlanSummary{}
	}
}

func normalizeNewShape(meta *domain.Metadata) []domain.PlanSummary {
	plans := make([]domain.PlanSummary, 0, len(meta.HighLevelOverview))
	for _, row := range meta.HighLevelOverview {
		summary := domain.PlanSummary{
			PlanOptionName:      row.PlanOption,
			QuoteType:           row.QuoteType,
			HSAIncluded:         row.HSAIncluded,
			TotalMonthlyPremium: row.TotalMonthlyPremium,
			RateGuarantee:       row.RateGuarantee,
			CoverageTypes:       []string{},
		}
		for _, breakdown := range meta.GranularBreakdown {
			for _, cell := range breakdown.CarrierData {
				if cell.PlanOption == row.PlanOption && cell.Included {
					summary.CoverageTypes = append(summary.CoverageTypes, breakdown.BenefitType)
					break
				}
			}
		}
		plans = append(plans, summary)
	}
	return plans
}

func normalizeLegacyShape(meta *domain.Metadata) []domain.PlanSummary {
	plans := make([]domain.PlanSummary, 0, len(meta.PlanOptions))
	for _, opt := range meta.PlanOptions {
		summary := domain.PlanSummary{
			PlanOptionName: opt.PlanOptionName,
			QuoteType:      opt.QuoteType,
			HSAIncluded:    opt.HSAIncluded,
			CoverageTypes:  []string{},
		}
		if total, ok := meta.PlanOptionTotals[opt.PlanOptionName]; ok {
			summary.TotalMonthlyPremium = total
		} else if len(opt.CarrierProposals) > 0 {
			summary.TotalMonthlyPremium = opt.CarrierProposals[0].TotalMonthlyPremium
		}
		// The rate guarantee lives on the proposal regardless of which
		// source supplied the monthly total.
		if len(opt.CarrierProposals) > 0 {
			summary.RateGuarantee = opt.CarrierProposals[0].RateGuarantee
		}

		// Distinct coverage types for this plan, first-seen order.
		seen := make(map[string]struct{})
		for _, cov := range meta.AllCoverages {
			if cov.PlanOptionName != opt.PlanOptionName {
				continue
			}
			if _, ok := seen[cov.CoverageType]; ok {
				continue
			}
			seen[cov.CoverageType] = struct{}{}
			summary.CoverageTypes = append(summary.CoverageTypes, cov.CoverageType)
		}
		plans = append(plans, summary)
	}
	return plans
}
