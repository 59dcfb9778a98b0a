package pipeline

import (
	"fmt"
	"strings"

	"quotedesk/internal/domain"
)

// promptVersion tags the instruction block so stored documents can be traced
// back to the template that produced them.
const promptVersion = "quote-extraction-v2"

// BuildQuoteExtractionPrompt renders the extraction prompt for one carrier
// quote: the fixed instruction block, the document identity, and the OCR text.
func BuildQuoteExtractionPrompt(extractedText, fileName string, category domain.DocumentCategory) string {
	var b strings.Builder

	b.WriteString(`You are an insurance quote data extraction assistant. Analyze the quote document text below and extract ALL data into the following JSON structure.

IMPORTANT INSTRUCTIONS:
- Extract EVERY coverage line from every plan option. Do not skip, summarize, or omit any coverage.
- All premium, rate, volume, and lives values must be JSON numbers, never quoted strings.
- "premium" and "monthlyPremium" must both be present and equal for every coverage.
- Every coverage must name its carrier, plan option, and unit rate basis.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation. The root object must have exactly three keys: "metadata", "coverages", "planNotes".

"coverageType" must be one of: `)
	b.WriteString(strings.Join(domain.CoverageTypes, ", "))
	b.WriteString(`.

The "metadata" object must follow this schema:
{
  "documentType": "",
  "clientName": "",
  "carrierName": "",
  "effectiveDate": "",
  "quoteDate": "",
  "policyNumber": "",
  "planOptionName": "",
  "totalProposedMonthlyPlanPremium": 0,
  "planOptionTotals": {"<planOption>": 0},
  "rateGuarantees": {"<coverageType>": ""},
  "highLevelOverview": [
    {"planOption": "", "totalMonthlyPremium": 0, "rateGuarantee": "", "quoteType": "", "hsaIncluded": false}
  ],
  "granularBreakdown": [
    {"benefitType": "", "carrierData": [{"planOption": "", "included": false, "detail": ""}]}
  ]
}

"planOptionTotals" is required whenever the document contains more than one plan option.

Each element of "coverages" must follow this schema:
{
  "coverageType": "",
  "carrierName": "",
  "planOptionName": "",
  "premium": 0,
  "monthlyPremium": 0,
  "unitRate": 0,
  "unitRateBasis": "",
  "volume": 0,
  "lives": 0,
  "benefitDetails": {}
}

"benefitDetails" must include the sub-fields relevant to the coverage type:
- Term Life, Basic Life, AD&D, Dependent Life: benefitAmount, reductionSchedule, terminationAge, nonEvidenceMaximum
- Critical Illness: benefitAmount, coveredConditions, terminationAge
- LTD, STD: benefitSchedule, maximumBenefit, eliminationPeriod, benefitPeriod, taxability
- Extended Healthcare, Prescription Drugs, Paramedical: coinsurance, deductible, annualMaximum, dispensingFeeCap
- Dental Care: coinsurance, deductible, annualMaximum, recallFrequency, feeGuide
- Vision: benefitAmount, frequency
- EAP: sessionsIncluded, provider
- Health Spending Account, HSA: annualAllocation, carryForward

Each element of "planNotes" is {"note": ""} carrying any caveat, assumption, or remark found in the document.

If a field is not present in the document, use empty string for text, 0 for numbers, and false for booleans.
`)

	fmt.Fprintf(&b, "\nDocument file name: %s\nDocument category: %s\nPrompt version: %s\n", fileName, category, promptVersion)
	b.WriteString("\n--- EXTRACTED DOCUMENT TEXT ---\n")
	b.WriteString(extractedText)

	return b.String()
}
