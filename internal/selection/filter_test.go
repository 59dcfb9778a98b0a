package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/domain"
	"quotedesk/internal/selection"
)

func processedDoc() *domain.ProcessedDocument {
	return &domain.ProcessedDocument{
		Metadata: domain.Metadata{
			CarrierName: "Sun Life",
			HighLevelOverview: []domain.OverviewRow{
				{PlanOption: "Option A", TotalMonthlyPremium: 1000, QuoteType: "Current Premium"},
				{PlanOption: "Option B", TotalMonthlyPremium: 1200, QuoteType: "Alternative", HSAIncluded: true},
			},
			GranularBreakdown: []domain.BreakdownRow{
				{
					BenefitType: "Dental Care",
					CarrierData: []domain.BreakdownDetail{
						{PlanOption: "Option A", Included: true},
						{PlanOption: "Option B", Included: true},
					},
				},
			},
			PlanOptions: []domain.PlanOption{
				{PlanOptionName: "Option A"},
				{PlanOptionName: "Option B"},
			},
			AllCoverages: []domain.CoverageEntry{
				{CoverageType: "Dental Care", PlanOptionName: "Option A"},
				{CoverageType: "Dental Care", PlanOptionName: "Option B"},
			},
		},
		Coverages: []domain.CoverageEntry{
			{CoverageType: "Dental Care", PlanOptionName: "Option A", Premium: 100, MonthlyPremium: 100},
			{CoverageType: "Vision", PlanOptionName: "Option A", Premium: 50, MonthlyPremium: 50},
			{CoverageType: "Dental Care", PlanOptionName: "Option B", Premium: 120, MonthlyPremium: 120},
		},
		PlanNotes: []domain.PlanNote{{Note: "rates guaranteed"}},
	}
}

func TestFilterBySelection_RestrictsToSelectedPlans(t *testing.T) {
	doc := processedDoc()
	filtered := selection.FilterBySelection(doc, []string{"Option A"})

	require.Len(t, filtered.Metadata.HighLevelOverview, 1)
	assert.Equal(t, "Option A", filtered.Metadata.HighLevelOverview[0].PlanOption)

	require.Len(t, filtered.Metadata.GranularBreakdown, 1)
	require.Len(t, filtered.Metadata.GranularBreakdown[0].CarrierData, 1)
	assert.Equal(t, "Option A", filtered.Metadata.GranularBreakdown[0].CarrierData[0].PlanOption)

	require.Len(t, filtered.Metadata.PlanOptions, 1)
	require.Len(t, filtered.Metadata.AllCoverages, 1)

	require.Len(t, filtered.Coverages, 2)
	for _, cov := range filtered.Coverages {
		assert.Equal(t, "Option A", cov.PlanOptionName)
	}

	// Notes and document-level facts survive untouched.
	assert.Equal(t, doc.PlanNotes, filtered.PlanNotes)
	assert.Equal(t, "Sun Life", filtered.Metadata.CarrierName)
}

func TestFilterBySelection_NeverMutatesInput(t *testing.T) {
	doc := processedDoc()
	_ = selection.FilterBySelection(doc, []string{"Option A"})

	assert.Len(t, doc.Metadata.HighLevelOverview, 2)
	assert.Len(t, doc.Coverages, 3)
}

func TestFilterBySelection_Idempotent(t *testing.T) {
	doc := processedDoc()
	once := selection.FilterBySelection(doc, []string{"Option A"})
	twice := selection.FilterBySelection(once, []string{"Option A"})
	assert.Equal(t, once, twice)
}

func TestFilterBySelection_AllPlansIsIdentityOnRows(t *testing.T) {
	doc := processedDoc()
	filtered := selection.FilterBySelection(doc, []string{"Option A", "Option B"})

	assert.Equal(t, doc.Metadata.HighLevelOverview, filtered.Metadata.HighLevelOverview)
	assert.Equal(t, doc.Metadata.PlanOptions, filtered.Metadata.PlanOptions)
	assert.Equal(t, doc.Coverages, filtered.Coverages)
}

func TestFilterBySelection_EmptySelectionYieldsNoRows(t *testing.T) {
	filtered := selection.FilterBySelection(processedDoc(), nil)

	assert.Empty(t, filtered.Metadata.HighLevelOverview)
	assert.Empty(t, filtered.Metadata.PlanOptions)
	assert.Empty(t, filtered.Metadata.AllCoverages)
	assert.Empty(t, filtered.Coverages)
}

func TestFilterBySelection_NilDocument(t *testing.T) {
	assert.Nil(t, selection.FilterBySelection(nil, []string{"Option A"}))
}

func TestInferDocumentType_Priority(t *testing.T) {
	plans := []domain.PlanSummary{
		{PlanOptionName: "Option A", QuoteType: "Alternative"},
		{PlanOptionName: "Option B", QuoteType: "Current Premium"},
		{PlanOptionName: "Option C", QuoteType: "Renegotiated"},
	}

	tests := []struct {
		name     string
		selected []string
		want     string
	}{
		{"current premium wins over all", []string{"Option A", "Option B", "Option C"}, "Current Premium"},
		{"renegotiated beats alternative", []string{"Option A", "Option C"}, "Renegotiated"},
		{"alternative alone", []string{"Option A"}, "Alternative"},
		{"nothing selected", nil, ""},
		{"unknown plan name", []string{"Option Z"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selection.InferDocumentType(plans, tt.selected))
		})
	}
}

func TestIncludesHSA(t *testing.T) {
	plans := []domain.PlanSummary{
		{PlanOptionName: "Option A", HSAIncluded: false},
		{PlanOptionName: "Option B", HSAIncluded: true},
	}

	assert.False(t, selection.IncludesHSA(plans, []string{"Option A"}))
	assert.True(t, selection.IncludesHSA(plans, []string{"Option A", "Option B"}))
	assert.False(t, selection.IncludesHSA(plans, nil))
}
