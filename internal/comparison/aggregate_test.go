package comparison_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/comparison"
	"quotedesk/internal/domain"
)

func twoCarrierDocs() []domain.ProcessedDocument {
	return []domain.ProcessedDocument{
		{
			Metadata: domain.Metadata{CarrierName: "Sun Life"},
			Coverages: []domain.CoverageEntry{
				{CoverageType: "Extended Healthcare", PlanOptionName: "Option A", Premium: 500, MonthlyPremium: 500},
				{CoverageType: "Dental Care", CarrierName: "Sun Life", PlanOptionName: "Option A", Premium: 300, MonthlyPremium: 300},
			},
		},
		{
			Metadata: domain.Metadata{CarrierName: "Manulife"},
			Coverages: []domain.CoverageEntry{
				{CoverageType: "Extended Healthcare", PlanOptionName: "Renewal", Premium: 450, MonthlyPremium: 450},
			},
		},
	}
}

func TestAggregateByCoverageType_GroupsAcrossDocuments(t *testing.T) {
	result := comparison.AggregateByCoverageType(twoCarrierDocs(), nil)

	assert.Equal(t, 2, result.DocumentsConsidered)
	assert.Equal(t, 3, result.RowsConsidered)
	require.Len(t, result.Groups, 2)
	assert.Len(t, result.Groups["Extended Healthcare"], 2)
	assert.Len(t, result.Groups["Dental Care"], 1)
}

func TestAggregateByCoverageType_CarrierInheritance(t *testing.T) {
	result := comparison.AggregateByCoverageType(twoCarrierDocs(), []string{"Extended Healthcare"})

	rows := result.Groups["Extended Healthcare"]
	require.Len(t, rows, 2)
	// The first entry had no carrierName and inherits the document's.
	assert.Equal(t, "Sun Life", rows[0].CarrierName)
	assert.Equal(t, "Manulife", rows[1].CarrierName)
}

func TestAggregateByCoverageType_CarriersDedupedAndSorted(t *testing.T) {
	result := comparison.AggregateByCoverageType(twoCarrierDocs(), nil)
	assert.Equal(t, []string{"Manulife", "Sun Life"}, result.Carriers)
}

func TestAggregateByCoverageType_TypeFilter(t *testing.T) {
	result := comparison.AggregateByCoverageType(twoCarrierDocs(), []string{"Dental Care"})

	require.Len(t, result.Groups, 1)
	assert.Len(t, result.Groups["Dental Care"], 1)
	// Filtered-out rows still count toward the diagnostics.
	assert.Equal(t, 3, result.RowsConsidered)
	assert.Equal(t, []string{"Sun Life"}, result.Carriers)
}

func TestAggregateByCoverageType_EmptyResultStaysDiagnosable(t *testing.T) {
	result := comparison.AggregateByCoverageType(twoCarrierDocs(), []string{"Vision"})

	assert.Empty(t, result.Groups)
	assert.Equal(t, 2, result.DocumentsConsidered)
	assert.Equal(t, 3, result.RowsConsidered)
	assert.Empty(t, result.Carriers)
}

func TestAggregateByCoverageType_NoDocuments(t *testing.T) {
	result := comparison.AggregateByCoverageType(nil, nil)

	assert.Equal(t, 0, result.DocumentsConsidered)
	assert.Equal(t, 0, result.RowsConsidered)
	assert.NotNil(t, result.Groups)
	assert.NotNil(t, result.Carriers)
}
