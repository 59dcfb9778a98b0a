package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/domain"
	"quotedesk/internal/pipeline"
)

func newShapeMetadata() *domain.Metadata {
	return &domain.Metadata{
		HighLevelOverview: []domain.OverviewRow{
			{PlanOption: "Option A", TotalMonthlyPremium: 1000, RateGuarantee: "24 months", QuoteType: "Current Premium", HSAIncluded: false},
			{PlanOption: "Option B", TotalMonthlyPremium: 1200, RateGuarantee: "16 months", QuoteType: "Alternative", HSAIncluded: true},
		},
		GranularBreakdown: []domain.BreakdownRow{
			{
				BenefitType: "Dental Care",
				CarrierData: []domain.BreakdownDetail{
					{PlanOption: "Option A", Included: true, Detail: "80% basic"},
					{PlanOption: "Option B", Included: true, Detail: "100% basic"},
				},
			},
			{
				BenefitType: "Vision",
				CarrierData: []domain.BreakdownDetail{
					{PlanOption: "Option A", Included: false},
					{PlanOption: "Option B", Included: true, Detail: "$300 / 24 months"},
				},
			},
		},
	}
}

func legacyShapeMetadata() *domain.Metadata {
	return &domain.Metadata{
		PlanOptions: []domain.PlanOption{
			{PlanOptionName: "Option A", QuoteType: "Current Premium"},
			{PlanOptionName: "Option B", QuoteType: "Alternative", HSAIncluded: true},
		},
		PlanOptionTotals: map[string]float64{"Option A": 1000},
		AllCoverages: []domain.CoverageEntry{
			{CoverageType: "Dental Care", PlanOptionName: "Option A"},
			{CoverageType: "Dental Care", PlanOptionName: "Option A"},
			{CoverageType: "Vision", PlanOptionName: "Option A"},
			{CoverageType: "Extended Healthcare", PlanOptionName: "Option B"},
		},
	}
}

func TestDetectShape_NewShapeWinsWhenBothPresent(t *testing.T) {
	meta := newShapeMetadata()
	meta.PlanOptions = legacyShapeMetadata().PlanOptions

	assert.Equal(t, pipeline.NewShape, pipeline.DetectShape(meta))
}

func TestDetectShape_Legacy(t *testing.T) {
	assert.Equal(t, pipeline.LegacyShape, pipeline.DetectShape(legacyShapeMetadata()))
}

func TestDetectShape_LegacyFromAllCoveragesOnly(t *testing.T) {
	meta := &domain.Metadata{
		AllCoverages: []domain.CoverageEntry{{CoverageType: "Vision", PlanOptionName: "Option A"}},
	}
	assert.Equal(t, pipeline.LegacyShape, pipeline.DetectShape(meta))
}

func TestDetectShape_None(t *testing.T) {
	assert.Equal(t, pipeline.NoShape, pipeline.DetectShape(&domain.Metadata{}))
	assert.Equal(t, pipeline.NoShape, pipeline.DetectShape(nil))
}

func TestNormalizePlans_NewShape(t *testing.T) {
	plans := pipeline.NormalizePlans(newShapeMetadata())
	require.Len(t, plans, 2)

	// Output follows overview row order.
	assert.Equal(t, "Option A", plans[0].PlanOptionName)
	assert.Equal(t, "Current Premium", plans[0].QuoteType)
	assert.Equal(t, float64(1000), plans[0].TotalMonthlyPremium)
	assert.Equal(t, "24 months", plans[0].RateGuarantee)
	assert.False(t, plans[0].HSAIncluded)
	// Vision is not included for Option A.
	assert.Equal(t, []string{"Dental Care"}, plans[0].CoverageTypes)

	assert.Equal(t, "Option B", plans[1].PlanOptionName)
	assert.True(t, plans[1].HSAIncluded)
	assert.Equal(t, []string{"Dental Care", "Vision"}, plans[1].CoverageTypes)
}

func TestNormalizePlans_LegacyShape(t *testing.T) {
	plans := pipeline.NormalizePlans(legacyShapeMetadata())
	require.Len(t, plans, 2)

	assert.Equal(t, "Option A", plans[0].PlanOptionName)
	assert.Equal(t, float64(1000), plans[0].TotalMonthlyPremium)
	// Duplicate Dental Care rows collapse; first-seen order is kept.
	assert.Equal(t, []string{"Dental Care", "Vision"}, plans[0].CoverageTypes)

	assert.Equal(t, "Option B", plans[1].PlanOptionName)
	assert.True(t, plans[1].HSAIncluded)
	assert.Equal(t, []string{"Extended Healthcare"}, plans[1].CoverageTypes)
}

func TestNormalizePlans_LegacyFallsBackToCarrierProposalTotal(t *testing.T) {
	meta := &domain.Metadata{
		PlanOptions: []domain.PlanOption{
			{
				PlanOptionName: "Option C",
				CarrierProposals: []domain.CarrierProposal{
					{TotalMonthlyPremium: 1500, RateGuarantee: "12 months"},
				},
			},
		},
	}

	plans := pipeline.NormalizePlans(meta)
	require.Len(t, plans, 1)
	assert.Equal(t, float64(1500), plans[0].TotalMonthlyPremium)
	assert.Equal(t, "12 months", plans[0].RateGuarantee)
}

func TestNormalizePlans_LegacyKeepsRateGuaranteeWithTotalsEntry(t *testing.T) {
	meta := &domain.Metadata{
		PlanOptions: []domain.PlanOption{
			{
				PlanOptionName: "Option A",
				CarrierProposals: []domain.CarrierProposal{
					{TotalMonthlyPremium: 480, RateGuarantee: "24 months"},
				},
			},
		},
		PlanOptionTotals: map[string]float64{"Option A": 500},
	}

	plans := pipeline.NormalizePlans(meta)
	require.Len(t, plans, 1)
	// The totals map wins for the premium, never at the cost of the guarantee.
	assert.Equal(t, float64(500), plans[0].TotalMonthlyPremium)
	assert.Equal(t, "24 months", plans[0].RateGuarantee)
}

func TestNormalizePlans_NoShapeYieldsEmpty(t *testing.T) {
	plans := pipeline.NormalizePlans(&domain.Metadata{ClientName: "Acme Corp"})
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestNormalizePlans_Deterministic(t *testing.T) {
	meta := legacyShapeMetadata()
	first := pipeline.NormalizePlans(meta)
	second := pipeline.NormalizePlans(meta)
	assert.Equal(t, first, second)
}
