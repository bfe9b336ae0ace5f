package rules

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook layout: a "field_req" sheet with columns field / data type /
// rule / range, plus optional single-column catalog sheets ("occu",
// "state", "acc_type", "channel").
const ruleSheet = "field_req"

// Sheet names mapped to canonical catalog names.
var catalogSheets = map[string]string{
	"occu":     CatalogOccupation,
	"state":    CatalogState,
	"acc_type": CatalogAccountType,
	"channel":  CatalogChannel,
}

// LoadWorkbook reads a rules workbook and returns the parsed rule table
// plus the catalogs resolved against the built-in defaults.
func LoadWorkbook(path string) (*RuleSet, Catalogs, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open rules workbook %s: %w", path, err)
	}
	defer f.Close()

	rs, err := parseRuleSheet(f)
	if err != nil {
		return nil, nil, err
	}

	overrides := make(map[string][]string)
	for sheet, catalog := range catalogSheets {
		vals, err := singleColumnValues(f, sheet)
		if err != nil {
			return nil, nil, err
		}
		if vals != nil {
			overrides[catalog] = vals
		}
	}

	catalogs, err := ResolveCatalogs(overrides)
	if err != nil {
		return nil, nil, err
	}

	if err := rs.Validate(catalogs); err != nil {
		return nil, nil, err
	}
	return rs, catalogs, nil
}

func parseRuleSheet(f *excelize.File) (*RuleSet, error) {
	rows, err := f.GetRows(ruleSheet)
	if err != nil {
		return nil, configErrorf("", "workbook has no %q sheet", ruleSheet)
	}
	if len(rows) < 2 {
		return nil, configErrorf("", "%q sheet needs a header row and at least one rule", ruleSheet)
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	rs := &RuleSet{}
	for _, row := range rows[1:] {
		field := cell(row, cols["field"])
		if field == "" {
			continue
		}
		spec, err := ParseRule(
			field,
			cell(row, cols["data type"]),
			cell(row, cols["rule"]),
			cell(row, cols["range"]),
		)
		if err != nil {
			return nil, err
		}
		rs.Specs = append(rs.Specs, spec)
	}

	if len(rs.Specs) == 0 {
		return nil, configErrorf("", "%q sheet contains no usable rules", ruleSheet)
	}
	return rs, nil
}

// mapHeader locates the expected columns by header text, case-insensitive.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"field", "data type", "rule"} {
		if _, ok := cols[required]; !ok {
			return nil, configErrorf("", "%q sheet is missing the %q column", ruleSheet, required)
		}
	}
	if _, ok := cols["range"]; !ok {
		// Range column is optional; point past the row so cell() yields "".
		cols["range"] = len(header)
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// singleColumnValues reads a catalog sheet's first column, skipping blanks.
// Returns nil (no error) when the sheet does not exist.
func singleColumnValues(f *excelize.File, sheet string) ([]string, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	// First row is the column header.
	if len(rows) > 0 {
		rows = rows[1:]
	}

	var vals []string
	for _, row := range rows {
		v := cell(row, 0)
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals, nil
}
