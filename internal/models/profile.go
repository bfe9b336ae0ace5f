package models

// Profile is one generated customer record: identifiers, demographics,
// account fields and the balance pair. Profiles are created by the profile
// assembler, optionally nulled by the missingness injector, and then
// written out untouched.
type Profile struct {
	CustomerID   string // prefixed, globally unique per run
	AccountID    string // prefixed, globally unique per run
	Age          int
	Occupation   string
	State        string
	TenureMonths int
	AccountType  string

	// Balance pair; AverageBalance is strictly below Balance.
	Balance        int64
	AverageBalance int64

	// Extra carries rule-driven columns beyond the core set, in rule
	// table order.
	Extra []ExtraField

	missing map[string]bool
}

// ExtraField is a rule-driven column with its rendered value.
type ExtraField struct {
	Name  string
	Value string
}

// IsMinor reports whether this profile is under the adult age threshold,
// which caps the balance draw.
func (p *Profile) IsMinor() bool {
	return p.Age < 18
}

// MarkMissing flags a field as nulled by the missingness injector.
func (p *Profile) MarkMissing(field string) {
	if p.missing == nil {
		p.missing = make(map[string]bool)
	}
	p.missing[field] = true
}

// IsMissing reports whether a field was nulled.
func (p *Profile) IsMissing(field string) bool {
	return p.missing[field]
}
