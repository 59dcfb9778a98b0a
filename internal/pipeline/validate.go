package pipeline

import (
	"encoding/json"
	"fmt"
	"log"

	"quotedesk/internal/domain"
)

// CoverageValidation is the outcome of validating one candidate coverages
// array. InvalidCount counts excluded entries; exclusions are never silent.
type CoverageValidation struct {
	Valid        []domain.CoverageEntry
	ValidCount   int
	InvalidCount int
	Synthesized  bool
}

// ValidateCoverages enforces the coverage-entry contract field by field. An
// entry failing any check is excluded whole; no partial line is salvaged. A
// coverage line with a missing premium is more dangerous half-filled than
// dropped. If nothing survives, exactly one placeholder entry is synthesized
// from metadata so downstream aggregation never sees an empty coverage list.
func ValidateCoverages(raw []json.RawMessage, meta *domain.Metadata) *CoverageValidation {
	result := &CoverageValidation{}

	for i, entry := range raw {
		coverage, err := validateEntry(entry)
		if err != nil {
			result.InvalidCount++
			log.Printf("pipeline.ValidateCoverages: excluding coverage %d: %v", i, err)
			continue
		}
		result.Valid = append(result.Valid, *coverage)
		result.ValidCount++
	}

	if len(result.Valid) == 0 {
		result.Valid = []domain.CoverageEntry{synthesizePlaceholder(meta)}
		result.Synthesized = true
	}

	return result
}

func validateEntry(raw json.RawMessage) (*domain.CoverageEntry, error) {
	// Decode into a generic map first: a numeric string decodes as string,
	// which is exactly the violation the contract forbids.
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}

	numbers := make(map[string]float64, 5)
	for _, key := range []string{"premium", "monthlyPremium", "unitRate", "volume", "lives"} {
		val, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("missing numeric field %q", key)
		}
		num, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("field %q must be a number, got %T", key, val)
		}
		numbers[key] = num
	}
	if numbers["premium"] != numbers["monthlyPremium"] {
		return nil, fmt.Errorf("premium %v does not equal monthlyPremium %v", numbers["premium"], numbers["monthlyPremium"])
	}

	strs := make(map[string]string, 4)
	for _, key := range []string{"coverageType", "carrierName", "planOptionName", "unitRateBasis"} {
		val, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("missing string field %q", key)
		}
		s, ok := val.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("field %q must be a non-empty string", key)
		}
		strs[key] = s
	}
	if !domain.IsValidCoverageType(strs["coverageType"]) {
		return nil, fmt.Errorf("coverageType %q is not a recognized coverage type", strs["coverageType"])
	}

	detailsVal, ok := fields["benefitDetails"]
	if !ok {
		return nil, fmt.Errorf("missing benefitDetails")
	}
	details, ok := detailsVal.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("benefitDetails must be an object")
	}

	return &domain.CoverageEntry{
		CoverageType:   strs["coverageType"],
		CarrierName:    strs["carrierName"],
		PlanOptionName: strs["planOptionName"],
		Premium:        numbers["premium"],
		MonthlyPremium: numbers["monthlyPremium"],
		UnitRate:       numbers["unitRate"],
		UnitRateBasis:  strs["unitRateBasis"],
		Volume:         numbers["volume"],
		Lives:          numbers["lives"],
		BenefitDetails: details,
	}, nil
}

func synthesizePlaceholder(meta *domain.Metadata) domain.CoverageEntry {
	carrier := "Unknown Carrier"
	plan := "Default Plan"
	var premium float64
	if meta != nil {
		if meta.CarrierName != "" {
			carrier = meta.CarrierName
		}
		if meta.PlanOptionName != "" {
			plan = meta.PlanOptionName
		}
		if meta.TotalProposedMonthlyPlanPremium != nil {
			premium = *meta.TotalProposedMonthlyPlanPremium
		}
	}
	return domain.CoverageEntry{
		CoverageType:   domain.CoverageTypeUnknown,
		CarrierName:    carrier,
		PlanOptionName: plan,
		Premium:        premium,
		MonthlyPremium: premium,
		UnitRateBasis:  "n/a",
		BenefitDetails: map[string]any{
			"note": "synthesized placeholder: no extracted coverage entry passed validation",
		},
	}
}
