package generator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

func testCatalogs(t *testing.T) rules.Catalogs {
	t.Helper()
	catalogs, err := rules.ResolveCatalogs(nil)
	if err != nil {
		t.Fatalf("ResolveCatalogs: %v", err)
	}
	return catalogs
}

func TestFieldGeneratorRange(t *testing.T) {
	gen := NewFieldGenerator(utils.NewRandom(42), testCatalogs(t))
	spec := rules.RuleSpec{Field: "Balance_Hint", Type: rules.TypeInt, Kind: rules.KindRange, Min: 5000, Max: 150000}

	for i := 0; i < 10000; i++ {
		v, err := gen.Generate(spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if v.Int < 5000 || v.Int > 150000 {
			t.Fatalf("value %d outside [5000, 150000]", v.Int)
		}
	}
}

func TestFieldGeneratorDigitsNumeric(t *testing.T) {
	gen := NewFieldGenerator(utils.NewRandom(42), testCatalogs(t))
	spec := rules.RuleSpec{Field: "ref", Type: rules.TypeInt, Kind: rules.KindDigits, Digits: 8}

	for i := 0; i < 10000; i++ {
		v, err := gen.Generate(spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if v.Int < 10_000_000 || v.Int > 99_999_999 {
			t.Fatalf("value %d is not an 8-digit integer", v.Int)
		}
	}
}

func TestFieldGeneratorDigitsString(t *testing.T) {
	gen := NewFieldGenerator(utils.NewRandom(42), testCatalogs(t))
	spec := rules.RuleSpec{Field: "ref", Type: rules.TypeString, Kind: rules.KindDigits, Digits: 8, Width: 8}

	sawLeadingZero := false
	for i := 0; i < 10000; i++ {
		v, err := gen.Generate(spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(v.Str) != 8 {
			t.Fatalf("string %q is not 8 characters", v.Str)
		}
		if _, err := strconv.Atoi(v.Str); err != nil {
			t.Fatalf("string %q is not numeric", v.Str)
		}
		if strings.HasPrefix(v.Str, "0") {
			sawLeadingZero = true
		}
	}
	if !sawLeadingZero {
		t.Error("expected some leading zeros over 10000 draws of a string digit rule")
	}
}

func TestFieldGeneratorList(t *testing.T) {
	catalogs := testCatalogs(t)
	gen := NewFieldGenerator(utils.NewRandom(42), catalogs)
	spec := rules.RuleSpec{Field: "Stated_Occupation", Type: rules.TypeString, Kind: rules.KindList, Catalog: rules.CatalogOccupation}

	valid, err := catalogs.Get(rules.CatalogOccupation)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	validSet := make(map[string]bool)
	for _, v := range valid {
		validSet[v] = true
	}

	for i := 0; i < 1000; i++ {
		v, err := gen.Generate(spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !validSet[v.Str] {
			t.Fatalf("value %q is not in the occupation catalog", v.Str)
		}
	}
}

func TestFieldGeneratorUnknownCatalog(t *testing.T) {
	gen := NewFieldGenerator(utils.NewRandom(42), testCatalogs(t))
	spec := rules.RuleSpec{Field: "x", Type: rules.TypeString, Kind: rules.KindList, Catalog: "nope"}

	if _, err := gen.Generate(spec); err == nil {
		t.Error("expected error for unknown catalog")
	}
}

func TestFieldGeneratorZeroPadding(t *testing.T) {
	gen := NewFieldGenerator(utils.NewRandom(42), testCatalogs(t))
	spec := rules.RuleSpec{Field: "code", Type: rules.TypeString, Kind: rules.KindRange, Min: 1, Max: 99, Width: 4}

	for i := 0; i < 100; i++ {
		v, err := gen.Generate(spec)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(v.Str) != 4 {
			t.Fatalf("value %q not padded to width 4", v.Str)
		}
	}
}
