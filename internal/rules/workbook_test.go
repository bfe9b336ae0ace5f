package rules

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a minimal rules workbook for tests.
func writeWorkbook(t *testing.T, ruleRows [][]string, catalogs map[string][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ruleSheet); err != nil {
		t.Fatalf("NewSheet(%s): %v", ruleSheet, err)
	}
	rows := append([][]string{{"field", "data type", "rule", "range"}}, ruleRows...)
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(ruleSheet, cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	for sheet, vals := range catalogs {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet(%s): %v", sheet, err)
		}
		all := append([]string{sheet}, vals...)
		for i, v := range all {
			cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetCellValue(sheet, cellRef, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "rules.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t,
		[][]string{
			{"cust_id", "string", "random 8 digit number", "10000000 - 99999999"},
			{"Age", "int", "random 2 digit number", "10 - 99"},
			{"Stated_Occupation", "string", "based on listing occu", "based on listing"},
			{"Account_Type", "string", "based on listing acc_type", "based on listing"},
		},
		map[string][]string{
			"occu":     {"PILOT", "BAKER"},
			"acc_type": {"GIA", "IHSAN"},
		},
	)

	rs, catalogs, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("LoadWorkbook() error: %v", err)
	}

	if got := len(rs.Specs); got != 4 {
		t.Fatalf("loaded %d rules, want 4", got)
	}

	spec, ok := rs.Get("cust_id")
	if !ok || spec.Kind != KindRange || spec.Min != 10000000 || spec.Max != 99999999 {
		t.Errorf("cust_id rule = %+v", spec)
	}

	occ, err := catalogs.Get(CatalogOccupation)
	if err != nil {
		t.Fatalf("Get(occupation): %v", err)
	}
	if len(occ) != 2 || occ[0] != "PILOT" {
		t.Errorf("occupation catalog not overridden from workbook: %v", occ)
	}

	// Sheets the workbook omits keep built-in defaults.
	if _, err := catalogs.Get(CatalogState); err != nil {
		t.Errorf("state catalog should fall back to defaults: %v", err)
	}
}

func TestLoadWorkbookRejectsBadRules(t *testing.T) {
	path := writeWorkbook(t,
		[][]string{
			{"Mystery", "string", "just make something up", ""},
		},
		nil,
	)

	_, _, err := LoadWorkbook(path)
	if err == nil {
		t.Fatal("LoadWorkbook() accepted unrecognized rule text")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error is %T, want *ConfigurationError", err)
	}
}

func TestLoadWorkbookMissingRuleSheet(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	if _, _, err := LoadWorkbook(path); err == nil {
		t.Fatal("LoadWorkbook() accepted workbook without field_req sheet")
	}
}
