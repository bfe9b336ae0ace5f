package generator

import (
	"fmt"

	"github.com/synthdata/bankgen/internal/config"
	"github.com/synthdata/bankgen/internal/models"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

// ProfileAssembler turns the rule table into customer profiles: one row
// per customer, identifier columns served by unique allocators, balance
// columns derived from the balance model, everything else drawn by the
// field generator in rule-table order.
type ProfileAssembler struct {
	ruleSet  *rules.RuleSet
	fields   *FieldGenerator
	balances *BalanceModel
	custIDs  *IDAllocator
	accIDs   *IDAllocator
	rng      *utils.Random
}

// NewProfileAssembler wires up the assembler and performs the up-front
// identifier capacity check for both ID columns.
func NewProfileAssembler(ruleSet *rules.RuleSet, catalogs rules.Catalogs, rng *utils.Random, idStyle string, expected int) (*ProfileAssembler, error) {
	custFormat := customerIDFormat(ruleSet, idStyle)
	accFormat := accountIDFormat(ruleSet, idStyle)

	custIDs, err := NewIDAllocator(rules.FieldCustomerID, custFormat, rng, expected)
	if err != nil {
		return nil, err
	}
	accIDs, err := NewIDAllocator(rules.FieldAccountID, accFormat, rng, expected)
	if err != nil {
		return nil, err
	}

	return &ProfileAssembler{
		ruleSet:  ruleSet,
		fields:   NewFieldGenerator(rng, catalogs),
		balances: NewBalanceModel(rng),
		custIDs:  custIDs,
		accIDs:   accIDs,
		rng:      rng,
	}, nil
}

// customerIDFormat derives the cust_id format from the rule table's digit
// width, or the fixed-length token format when the token style is selected.
func customerIDFormat(ruleSet *rules.RuleSet, idStyle string) IDFormat {
	if idStyle == config.IDStyleToken {
		return IDFormat{Prefix: config.CustomerTokenPrefix, Style: config.IDStyleToken, Width: config.CustomerTokenWidth}
	}
	width := 8
	if spec, ok := ruleSet.Get(rules.FieldCustomerID); ok && spec.Digits > 0 {
		width = spec.Digits
	}
	return IDFormat{Prefix: config.CustomerIDPrefix, Style: config.IDStyleNumeric, Width: width}
}

// accountIDFormat derives the Customer_Acc format the same way.
func accountIDFormat(ruleSet *rules.RuleSet, idStyle string) IDFormat {
	if idStyle == config.IDStyleToken {
		return IDFormat{Prefix: config.AccountTokenPrefix, Style: config.IDStyleToken, Width: config.AccountTokenWidth}
	}
	width := 14
	if spec, ok := ruleSet.Get(rules.FieldAccountID); ok && spec.Digits > 0 {
		width = spec.Digits
	}
	return IDFormat{Prefix: config.AccountIDPrefix, Style: config.IDStyleNumeric, Width: width}
}

// Assemble generates count profiles in order. The returned slice is ready
// for missingness injection and CSV output.
func (a *ProfileAssembler) Assemble(count int) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, count)
	for i := 0; i < count; i++ {
		p, err := a.assembleOne()
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// assembleOne builds a single profile. Fields are drawn in rule-table
// order so a fixed seed yields identical output across runs.
func (a *ProfileAssembler) assembleOne() (*models.Profile, error) {
	p := &models.Profile{}

	hasAge := false
	for _, spec := range a.ruleSet.Specs {
		switch spec.Field {
		case rules.FieldCustomerID:
			p.CustomerID = a.custIDs.Next()
		case rules.FieldAccountID:
			p.AccountID = a.accIDs.Next()
		case rules.FieldAge:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.Age = int(v.Int)
			hasAge = true
		case rules.FieldOccupation:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.Occupation = v.Str
		case rules.FieldState:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.State = v.Str
		case rules.FieldTenureMonths:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.TenureMonths = int(v.Int)
		case rules.FieldAccountType:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.AccountType = v.Str
		default:
			v, err := a.fields.Generate(spec)
			if err != nil {
				return nil, err
			}
			p.Extra = append(p.Extra, models.ExtraField{Name: spec.Field, Value: v.Str})
		}
	}

	// Fallbacks for core fields the rule table omits: the balance model
	// still needs an account type and a tenure, and a missing age means no
	// minor cap applies.
	if p.AccountType == "" {
		spec := rules.RuleSpec{Field: rules.FieldAccountType, Type: rules.TypeString, Kind: rules.KindList, Catalog: rules.CatalogAccountType}
		v, err := a.fields.Generate(spec)
		if err != nil {
			return nil, err
		}
		p.AccountType = v.Str
	}
	if p.TenureMonths == 0 {
		p.TenureMonths = int(a.rng.Int64Range(1, 180))
	}
	age := p.Age
	if !hasAge {
		age = config.AdultAge
	}

	p.Balance, p.AverageBalance = a.balances.Derive(p.AccountType, age, p.TenureMonths)
	return p, nil
}

// IssuedCustomerIDs returns how many customer identifiers were allocated.
func (a *ProfileAssembler) IssuedCustomerIDs() int {
	return a.custIDs.Issued()
}

// ProfileHeaders returns the CSV column order: the rule-table fields
// followed by the derived balance pair.
func ProfileHeaders(ruleSet *rules.RuleSet) []string {
	headers := append([]string{}, ruleSet.Fields()...)
	return append(headers, rules.FieldBalance, rules.FieldAvgBalance)
}

// ProfileRow renders one profile in header order, substituting the missing
// value marker for nulled fields.
func ProfileRow(p *models.Profile, ruleSet *rules.RuleSet) []string {
	row := make([]string, 0, len(ruleSet.Specs)+2)
	extraIdx := 0
	for _, spec := range ruleSet.Specs {
		if p.IsMissing(spec.Field) {
			if !isCoreField(spec.Field) {
				extraIdx++
			}
			row = append(row, MissingValueMarker)
			continue
		}
		switch spec.Field {
		case rules.FieldCustomerID:
			row = append(row, p.CustomerID)
		case rules.FieldAccountID:
			row = append(row, p.AccountID)
		case rules.FieldAge:
			row = append(row, FormatInt(p.Age))
		case rules.FieldOccupation:
			row = append(row, p.Occupation)
		case rules.FieldState:
			row = append(row, p.State)
		case rules.FieldTenureMonths:
			row = append(row, FormatInt(p.TenureMonths))
		case rules.FieldAccountType:
			row = append(row, p.AccountType)
		default:
			if extraIdx < len(p.Extra) {
				row = append(row, p.Extra[extraIdx].Value)
				extraIdx++
			} else {
				row = append(row, MissingValueMarker)
			}
		}
	}
	row = append(row, FormatInt64(p.Balance), FormatInt64(p.AverageBalance))
	return row
}

func isCoreField(field string) bool {
	switch field {
	case rules.FieldCustomerID, rules.FieldAccountID, rules.FieldAge,
		rules.FieldOccupation, rules.FieldState, rules.FieldTenureMonths,
		rules.FieldAccountType:
		return true
	}
	return false
}

// WriteProfilesCSV streams all profiles to the writer in order.
func WriteProfilesCSV(profiles []*models.Profile, ruleSet *rules.RuleSet, writer *CSVWriter) error {
	for _, p := range profiles {
		if err := writer.WriteRow(ProfileRow(p, ruleSet)); err != nil {
			return err
		}
	}
	return nil
}
