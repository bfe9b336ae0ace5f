package database

import (
	"strings"
	"testing"

	"github.com/synthdata/bankgen/internal/rules"
)

func TestProfileLoadSQL(t *testing.T) {
	headers := []string{
		rules.FieldCustomerID,
		rules.FieldAge,
		rules.FieldOccupation,
		rules.FieldBalance,
	}
	sql := profileLoadSQL(headers)

	if !strings.Contains(sql, "`cust_id`") {
		t.Error("identifier column should load directly")
	}
	if strings.Contains(sql, "NULLIF(@v_cust_id") {
		t.Error("identifier column must not go through NULLIF")
	}
	if !strings.Contains(sql, "`Age` = NULLIF(@v_Age, '')") {
		t.Errorf("nullable Age column missing NULLIF conversion:\n%s", sql)
	}
	if !strings.Contains(sql, "`Stated_Occupation` = NULLIF(@v_Stated_Occupation, '')") {
		t.Errorf("nullable occupation column missing NULLIF conversion:\n%s", sql)
	}
	if !strings.Contains(sql, "IGNORE 1 LINES") {
		t.Error("header row must be skipped")
	}
}

func TestSanitizeIdent(t *testing.T) {
	cases := map[string]string{
		"Age":             "Age",
		"Account Tenure":  "Account_Tenure",
		"weird-col.name!": "weird_col_name_",
	}
	for in, want := range cases {
		if got := sanitizeIdent(in); got != want {
			t.Errorf("sanitizeIdent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureLocalInfile(t *testing.T) {
	cases := map[string]string{
		"user:pass@tcp(localhost:3306)/bank":                    "user:pass@tcp(localhost:3306)/bank?allowAllFiles=true",
		"user:pass@tcp(localhost:3306)/bank?parseTime=true":     "user:pass@tcp(localhost:3306)/bank?parseTime=true&allowAllFiles=true",
		"user:pass@tcp(localhost:3306)/bank?allowAllFiles=true": "user:pass@tcp(localhost:3306)/bank?allowAllFiles=true",
	}
	for in, want := range cases {
		if got := ensureLocalInfile(in); got != want {
			t.Errorf("ensureLocalInfile(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskDSN(t *testing.T) {
	got := MaskDSN("user:secret@tcp(localhost:3306)/bank")
	if strings.Contains(got, "secret") {
		t.Errorf("MaskDSN leaked password: %q", got)
	}
	if got != "user:***@tcp(localhost:3306)/bank" {
		t.Errorf("MaskDSN = %q", got)
	}
}
