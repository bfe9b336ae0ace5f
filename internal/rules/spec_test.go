package rules

import (
	"errors"
	"testing"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		dataType  string
		rule      string
		rangeText string
		want      RuleSpec
	}{
		{
			name:      "numeric range with explicit bounds",
			field:     "cust_id",
			dataType:  "string",
			rule:      "random 8 digit number",
			rangeText: "10000000 - 99999999",
			want:      RuleSpec{Field: "cust_id", Type: TypeString, Kind: KindRange, Min: 10000000, Max: 99999999, Width: 8},
		},
		{
			name:     "digit shorthand without range",
			field:    "Customer_Acc",
			dataType: "string",
			rule:     "random 14 digit number",
			want:     RuleSpec{Field: "Customer_Acc", Type: TypeString, Kind: KindDigits, Digits: 14, Width: 14},
		},
		{
			name:     "listing rule naming sheet",
			field:    "Stated_Occupation",
			dataType: "string",
			rule:     "based on listing occu",
			want:     RuleSpec{Field: "Stated_Occupation", Type: TypeString, Kind: KindList, Catalog: CatalogOccupation},
		},
		{
			name:     "listing rule resolved from field name",
			field:    "Account_Type",
			dataType: "string",
			rule:     "based on listing",
			want:     RuleSpec{Field: "Account_Type", Type: TypeString, Kind: KindList, Catalog: CatalogAccountType},
		},
		{
			name:      "plain range rule",
			field:     "Account_Tenure_Months",
			dataType:  "int",
			rule:      "range",
			rangeText: "1 - 180",
			want:      RuleSpec{Field: "Account_Tenure_Months", Type: TypeInt, Kind: KindRange, Min: 1, Max: 180, Width: 3},
		},
		{
			name:     "spelled-out two digit shorthand",
			field:    "Age",
			dataType: "int",
			rule:     "two digit number",
			want:     RuleSpec{Field: "Age", Type: TypeInt, Kind: KindFixedFormat, Min: 10, Max: 99, Width: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.field, tt.dataType, tt.rule, tt.rangeText)
			if err != nil {
				t.Fatalf("ParseRule() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRule() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseRuleRejections(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		dataType  string
		rule      string
		rangeText string
	}{
		{"unrecognized rule text", "Notes", "string", "whatever looks right", ""},
		{"inverted range", "Age", "int", "range", "99 - 10"},
		{"non-numeric bound", "Age", "int", "range", "ten - 99"},
		{"unknown data type", "Age", "years", "range", "10 - 99"},
		{"empty field name", "", "int", "range", "10 - 99"},
		{"listing with no catalog", "Favourite_Colour", "string", "based on listing", ""},
		{"oversized digit count", "Big_ID", "int", "random 25 digit number", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.field, tt.dataType, tt.rule, tt.rangeText)
			if err == nil {
				t.Fatal("ParseRule() accepted a malformed rule")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error is %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestRuleSetValidate(t *testing.T) {
	catalogs, err := ResolveCatalogs(nil)
	if err != nil {
		t.Fatalf("ResolveCatalogs() error: %v", err)
	}

	t.Run("default rule set is valid", func(t *testing.T) {
		if err := DefaultRuleSet().Validate(catalogs); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("duplicate field rejected", func(t *testing.T) {
		rs := &RuleSet{Specs: []RuleSpec{
			{Field: "Age", Type: TypeInt, Kind: KindRange, Min: 10, Max: 99},
			{Field: "Age", Type: TypeInt, Kind: KindRange, Min: 10, Max: 99},
		}}
		if err := rs.Validate(catalogs); err == nil {
			t.Error("Validate() accepted duplicate field")
		}
	})

	t.Run("unknown catalog rejected", func(t *testing.T) {
		rs := &RuleSet{Specs: []RuleSpec{
			{Field: "Pet", Type: TypeString, Kind: KindList, Catalog: "pets"},
		}}
		if err := rs.Validate(catalogs); err == nil {
			t.Error("Validate() accepted rule with unknown catalog")
		}
	})

	t.Run("zero digit count rejected", func(t *testing.T) {
		rs := &RuleSet{Specs: []RuleSpec{
			{Field: "ID", Type: TypeInt, Kind: KindDigits, Digits: 0},
		}}
		if err := rs.Validate(catalogs); err == nil {
			t.Error("Validate() accepted zero digit count")
		}
	})
}

func TestResolveCatalogOverrides(t *testing.T) {
	catalogs, err := ResolveCatalogs(map[string][]string{
		CatalogOccupation: {"PILOT", "PILOT", "BAKER", ""},
	})
	if err != nil {
		t.Fatalf("ResolveCatalogs() error: %v", err)
	}

	occ, err := catalogs.Get(CatalogOccupation)
	if err != nil {
		t.Fatalf("Get(occupation) error: %v", err)
	}
	if len(occ) != 2 || occ[0] != "PILOT" || occ[1] != "BAKER" {
		t.Errorf("override not de-duplicated in order: %v", occ)
	}

	// Catalogs without overrides keep their defaults.
	states, err := catalogs.Get(CatalogState)
	if err != nil {
		t.Fatalf("Get(state) error: %v", err)
	}
	if len(states) == 0 {
		t.Error("default state catalog should survive partial overrides")
	}
}
