package comparison

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders a market comparison as an Excel workbook, one sheet per
// coverage type with one row per coverage entry. Sheet order follows the
// sorted coverage-type names so repeated exports are byte-stable.
func WriteXLSX(comparison *MarketComparison) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	types := make([]string, 0, len(comparison.Groups))
	for t := range comparison.Groups {
		types = append(types, t)
	}
	sort.Strings(types)

	if len(types) == 0 {
		sheet := f.GetSheetName(0)
		_ = f.SetCellValue(sheet, "A1", fmt.Sprintf(
			"No coverages matched (%d documents, %d rows considered)",
			comparison.DocumentsConsidered, comparison.RowsConsidered))
		return save(f)
	}

	header := []string{"Carrier", "Plan Option", "Monthly Premium", "Unit Rate", "Unit Rate Basis", "Volume", "Lives"}

	for i, coverageType := range types {
		sheet := sanitizeSheetName(coverageType)
		if i == 0 {
			_ = f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("creating sheet %q: %w", sheet, err)
			}
		}

		for col, title := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(sheet, cell, title)
		}

		for row, entry := range comparison.Groups[coverageType] {
			values := []any{
				entry.CarrierName,
				entry.PlanOptionName,
				entry.MonthlyPremium,
				entry.UnitRate,
				entry.UnitRateBasis,
				entry.Volume,
				entry.Lives,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}

	return save(f)
}

func save(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeSheetName keeps sheet names within Excel's 31-character limit and
// strips characters Excel rejects.
func sanitizeSheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
	}
	if len(out) > 31 {
		out = out[:31]
	}
	if len(out) == 0 {
		return "Sheet1"
	}
	return string(out)
}
