package generator

import (
	"strings"
	"testing"

	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/models"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

func newTestAssembler(t *testing.T, seed int64, idStyle string, expected int) *ProfileAssembler {
	t.Helper()
	catalogs := testCatalogs(t)
	ruleSet := rules.DefaultRuleSet()
	assembler, err := NewProfileAssembler(ruleSet, catalogs, utils.NewRandom(seed), idStyle, expected)
	if err != nil {
		t.Fatalf("NewProfileAssembler: %v", err)
	}
	return assembler
}

func TestProfileAssemblerFieldsPopulated(t *testing.T) {
	assembler := newTestAssembler(t, 42, config.IDStyleNumeric, 1000)
	profiles, err := assembler.Assemble(1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(profiles) != 1000 {
		t.Fatalf("got %d profiles, want 1000", len(profiles))
	}

	for i, p := range profiles {
		if !strings.HasPrefix(p.CustomerID, config.CustomerIDPrefix) {
			t.Fatalf("profile %d: customer id %q missing prefix", i, p.CustomerID)
		}
		if !strings.HasPrefix(p.AccountID, config.AccountIDPrefix) {
			t.Fatalf("profile %d: account id %q missing prefix", i, p.AccountID)
		}
		if p.Age < 10 || p.Age > 99 {
			t.Fatalf("profile %d: age %d outside rule range", i, p.Age)
		}
		if p.Occupation == "" || p.State == "" || p.AccountType == "" {
			t.Fatalf("profile %d: empty catalog field: %+v", i, p)
		}
		if p.TenureMonths < 1 || p.TenureMonths > 180 {
			t.Fatalf("profile %d: tenure %d outside rule range", i, p.TenureMonths)
		}
		if p.AverageBalance >= p.Balance {
			t.Fatalf("profile %d: average %d >= balance %d", i, p.AverageBalance, p.Balance)
		}
		if p.IsMinor() && p.Balance > config.MinorBalanceCeiling {
			t.Fatalf("profile %d: minor balance %d exceeds ceiling", i, p.Balance)
		}
	}
}

func TestProfileAssemblerUniqueIdentifiers(t *testing.T) {
	assembler := newTestAssembler(t, 42, config.IDStyleNumeric, 5000)
	profiles, err := assembler.Assemble(5000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	custSeen := make(map[string]bool)
	accSeen := make(map[string]bool)
	for _, p := range profiles {
		if custSeen[p.CustomerID] {
			t.Fatalf("duplicate customer id %q", p.CustomerID)
		}
		if accSeen[p.AccountID] {
			t.Fatalf("duplicate account id %q", p.AccountID)
		}
		custSeen[p.CustomerID] = true
		accSeen[p.AccountID] = true
	}
}

func TestProfileAssemblerTokenStyle(t *testing.T) {
	assembler := newTestAssembler(t, 42, config.IDStyleToken, 100)
	profiles, err := assembler.Assemble(100)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for _, p := range profiles {
		if !strings.HasPrefix(p.CustomerID, config.CustomerTokenPrefix) || len(p.CustomerID) != config.CustomerTokenWidth {
			t.Fatalf("customer id %q is not a %d-char token", p.CustomerID, config.CustomerTokenWidth)
		}
		if !strings.HasPrefix(p.AccountID, config.AccountTokenPrefix) || len(p.AccountID) != config.AccountTokenWidth {
			t.Fatalf("account id %q is not a %d-char token", p.AccountID, config.AccountTokenWidth)
		}
	}
}

func TestProfileAssemblerExhaustion(t *testing.T) {
	catalogs := testCatalogs(t)
	ruleSet := &rules.RuleSet{Specs: []rules.RuleSpec{
		{Field: rules.FieldCustomerID, Type: rules.TypeString, Kind: rules.KindDigits, Digits: 2, Width: 2},
	}}
	_, err := NewProfileAssembler(ruleSet, catalogs, utils.NewRandom(42), config.IDStyleNumeric, 1000)
	if err == nil {
		t.Fatal("expected exhaustion error for 1000 profiles in a 2-digit id space")
	}
}

func TestProfileAssemblerReproducible(t *testing.T) {
	p1, err := newTestAssembler(t, 7, config.IDStyleNumeric, 500).Assemble(500)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	p2, err := newTestAssembler(t, 7, config.IDStyleNumeric, 500).Assemble(500)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	for i := range p1 {
		if *stripMissing(p1[i]) != *stripMissing(p2[i]) {
			t.Fatalf("profile %d diverged between identically seeded runs", i)
		}
	}
}

func TestProfileHeadersLayout(t *testing.T) {
	ruleSet := rules.DefaultRuleSet()
	headers := ProfileHeaders(ruleSet)

	want := append(append([]string{}, ruleSet.Fields()...), rules.FieldBalance, rules.FieldAvgBalance)
	if len(headers) != len(want) {
		t.Fatalf("got %d headers, want %d", len(headers), len(want))
	}
	for i := range headers {
		if headers[i] != want[i] {
			t.Errorf("header %d = %q, want %q", i, headers[i], want[i])
		}
	}
}

func TestProfileRowMissingMarker(t *testing.T) {
	assembler := newTestAssembler(t, 42, config.IDStyleNumeric, 10)
	profiles, err := assembler.Assemble(10)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	p := profiles[0]
	p.MarkMissing(rules.FieldOccupation)

	ruleSet := rules.DefaultRuleSet()
	row := ProfileRow(p, ruleSet)
	headers := ProfileHeaders(ruleSet)
	if len(row) != len(headers) {
		t.Fatalf("row has %d cells, headers have %d", len(row), len(headers))
	}

	for i, h := range headers {
		switch h {
		case rules.FieldOccupation:
			if row[i] != MissingValueMarker {
				t.Errorf("nulled occupation rendered as %q", row[i])
			}
		case rules.FieldCustomerID:
			if row[i] != p.CustomerID {
				t.Errorf("customer id cell = %q, want %q", row[i], p.CustomerID)
			}
		case rules.FieldBalance:
			if row[i] != FormatInt64(p.Balance) {
				t.Errorf("balance cell = %q, want %q", row[i], FormatInt64(p.Balance))
			}
		}
	}
}

// stripMissing copies the comparable portion of a profile for equality
// checks (Extra slices and the missing set are excluded).
func stripMissing(p *models.Profile) *struct {
	CustomerID, AccountID, Occupation, State, AccountType string
	Age, TenureMonths                                     int
	Balance, AverageBalance                               int64
} {
	return &struct {
		CustomerID, AccountID, Occupation, State, AccountType string
		Age, TenureMonths                                     int
		Balance, AverageBalance                               int64
	}{
		p.CustomerID, p.AccountID, p.Occupation, p.State, p.AccountType,
		p.Age, p.TenureMonths, p.Balance, p.AverageBalance,
	}
}
