package domain

// Metadata holds the document-level facts extracted from one carrier quote.
// It is produced once per processed document and only replaced wholesale by a
// re-run of the pipeline, never amended in place.
//
// Two historical extraction schemas coexist: the newer one populates
// HighLevelOverview and GranularBreakdown, the legacy one populates
// PlanOptions and AllCoverages. Presence of HighLevelOverview selects the new
// shape; consumers should not sniff the shape themselves and should rely on
// the normalizer's canonical output instead.
type Metadata struct {
	DocumentType                    string             `json:"documentType"`
	ClientName                      string             `json:"clientName"`
	CarrierName                     string             `json:"carrierName"`
	EffectiveDate                   string             `json:"effectiveDate"`
	QuoteDate                       string             `json:"quoteDate"`
	PolicyNumber                    string             `json:"policyNumber,omitempty"`
	PlanOptionName                  string             `json:"planOptionName"`
	TotalProposedMonthlyPlanPremium *float64           `json:"totalProposedMonthlyPlanPremium,omitempty"`
	PlanOptionTotals                map[string]float64 `json:"planOptionTotals,omitempty"`
	RateGuarantees                  map[string]string  `json:"rateGuarantees,omitempty"`

	// New shape.
	HighLevelOverview []OverviewRow  `json:"highLevelOverview,omitempty"`
	GranularBreakdown []BreakdownRow `json:"granularBreakdown,omitempty"`

	// Legacy shape.
	PlanOptions  []PlanOption    `json:"planOptions,omitempty"`
	AllCoverages []CoverageEntry `json:"allCoverages,omitempty"`
}

// OverviewRow is one per-plan-option summary row in the new extraction shape.
type OverviewRow struct {
	PlanOption          string  `json:"planOption"`
	TotalMonthlyPremium float64 `json:"totalMonthlyPremium"`
	RateGuarantee       string  `json:"rateGuarantee,omitempty"`
	QuoteType           string  `json:"quoteType,omitempty"`
	HSAIncluded         bool    `json:"hsaIncluded,omitempty"`
}

// BreakdownRow is one per-benefit-type row in the new extraction shape,
// listing which plan options include that benefit.
type BreakdownRow struct {
	BenefitType string            `json:"benefitType"`
	CarrierData []BreakdownDetail `json:"carrierData"`
}

// BreakdownDetail tags one plan option's inclusion of a benefit type.
type BreakdownDetail struct {
	PlanOption string `json:"planOption"`
	Included   bool   `json:"included"`
	Detail     string `json:"detail,omitempty"`
}

// PlanOption is one named proposal variant in the legacy extraction shape.
type PlanOption struct {
	PlanOptionName   string            `json:"planOptionName"`
	QuoteType        string            `json:"quoteType,omitempty"`
	HSAIncluded      bool              `json:"hsaIncluded,omitempty"`
	CarrierProposals []CarrierProposal `json:"carrierProposals,omitempty"`
}

// CarrierProposal is one carrier's figures for a legacy plan option.
type CarrierProposal struct {
	CarrierName         string  `json:"carrierName"`
	TotalMonthlyPremium float64 `json:"totalMonthlyPremium"`
	RateGuarantee       string  `json:"rateGuarantee,omitempty"`
}

// CoverageEntry is one line of benefit pricing and terms for a specific
// carrier, plan option, and benefit type.
type CoverageEntry struct {
	CoverageType   string         `json:"coverageType"`
	CarrierName    string         `json:"carrierName"`
	PlanOptionName string         `json:"planOptionName"`
	Premium        float64        `json:"premium"`
	MonthlyPremium float64        `json:"monthlyPremium"`
	UnitRate       float64        `json:"unitRate"`
	UnitRateBasis  string         `json:"unitRateBasis"`
	Volume         float64        `json:"volume"`
	Lives          float64        `json:"lives"`
	BenefitDetails map[string]any `json:"benefitDetails"`
}

// IsPlaceholder reports whether the entry is the synthesized stand-in emitted
// when no extracted coverage survived validation.
func (c CoverageEntry) IsPlaceholder() bool {
	return c.CoverageType == CoverageTypeUnknown
}

// PlanNote is a free-form remark attached to a processed document.
type PlanNote struct {
	Note string `json:"note"`
}

// ProcessedDocument is the canonical three-key output of a pipeline run and
// the unit consumed by comparison views.
type ProcessedDocument struct {
	Metadata  Metadata        `json:"metadata"`
	Coverages []CoverageEntry `json:"coverages"`
	PlanNotes []PlanNote      `json:"planNotes"`
}

// PlanSummary is the canonical per-plan-option view derived by the normalizer
// regardless of which extraction shape the document arrived in.
type PlanSummary struct {
	PlanOptionName      string   `json:"planOptionName"`
	QuoteType           string   `json:"quoteType,omitempty"`
	HSAIncluded         bool     `json:"hsaIncluded"`
	TotalMonthlyPremium float64  `json:"totalMonthlyPremium"`
	RateGuarantee       string   `json:"rateGuarantee,omitempty"`
	CoverageTypes       []string `json:"coverageTypes"`
}

// PlanSelection is one user's saved selection for a single document.
// FilteredData is derived and always recomputable from the document's
// ProcessedDocument; it is never a source of truth.
type PlanSelection struct {
	DocumentID    string             `json:"documentId"`
	SelectedPlans []string           `json:"selectedPlans"`
	DocumentType  string             `json:"documentType"`
	IncludeHSA    bool               `json:"includeHSA"`
	HSADetails    map[string]any     `json:"hsaDetails,omitempty"`
	FilteredData  *ProcessedDocument `json:"filteredData,omitempty"`
}
