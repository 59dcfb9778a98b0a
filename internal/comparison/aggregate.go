package comparison

import (
	"sort"

	"quotedesk/internal/domain"
)

// MarketComparison is the side-by-side dataset behind the comparison view:
// coverage entries from one or many documents grouped by coverage type.
// DocumentsConsidered and RowsConsidered are always reported so an empty
// grouping (an overly narrow filter, say) is diagnosable rather than mute.
type MarketComparison struct {
	Groups              map[string][]domain.CoverageEntry `json:"groups"`
	Carriers            []string                          `json:"carriers"`
	DocumentsConsidered int                               `json:"documentsConsidered"`
	RowsConsidered      int                               `json:"rowsConsidered"`
}

// AggregateByCoverageType merges coverages across documents, grouped by
// coverage type and optionally restricted to the given types. Entries missing
// a carrier name inherit the owning document's metadata carrier; carriers are
// deduplicated and sorted lexicographically for stable column ordering.
func AggregateByCoverageType(docs []domain.ProcessedDocument, coverageTypes []string) *MarketComparison {
	wanted := make(map[string]struct{}, len(coverageTypes))
	for _, t := range coverageTypes {
		wanted[t] = struct{}{}
	}

	result := &MarketComparison{
		Groups:              make(map[string][]domain.CoverageEntry),
		Carriers:            []string{},
		DocumentsConsidered: len(docs),
	}

	carrierSet := make(map[string]struct{})
	for _, doc := range docs {
		for _, cov := range doc.Coverages {
			result.RowsConsidered++
			if len(wanted) > 0 {
				if _, ok := wanted[cov.CoverageType]; !ok {
					continue
				}
			}
			if cov.CarrierName == "" {
				cov.CarrierName = doc.Metadata.CarrierName
			}
			result.Groups[cov.CoverageType] = append(result.Groups[cov.CoverageType], cov)
			if cov.CarrierName != "" {
				carrierSet[cov.CarrierName] = struct{}{}
			}
		}
	}

	for carrier := range carrierSet {
		result.Carriers = append(result.Carriers, carrier)
	}
	sort.Strings(result.Carriers)

	return result
}
