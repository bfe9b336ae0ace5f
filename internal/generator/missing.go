package generator

import (
	"sort"

	"github.com/synthdata/bankgen/internal/models"
	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

// MissingValueMarker is written to the CSV cell of a nulled field. Nulled
// cells are tracked structurally on the profile, never produced by a field
// generator, so the marker is unambiguous in output.
const MissingValueMarker = ""

// protectedColumns can never be nulled: identifier and balance fields are
// excluded from missingness structurally, not merely zero-rated.
var protectedColumns = map[string]bool{
	rules.FieldCustomerID: true,
	rules.FieldAccountID:  true,
	rules.FieldBalance:    true,
	rules.FieldAvgBalance: true,
}

// MissingnessPolicy maps field names to independent MCAR injection
// probabilities. Construction rejects protected columns, so a policy
// holding one cannot exist.
type MissingnessPolicy struct {
	rates  map[string]float64
	fields []string // deterministic traversal order
}

// NewMissingnessPolicy builds a policy from per-field rates. Protected
// columns and rates outside [0, 1] are configuration errors.
func NewMissingnessPolicy(rates map[string]float64) (*MissingnessPolicy, error) {
	p := &MissingnessPolicy{rates: make(map[string]float64, len(rates))}
	for field, rate := range rates {
		if protectedColumns[field] {
			return nil, &rules.ConfigurationError{Field: field, Reason: "identifier and balance columns cannot have a missingness rate"}
		}
		if rate < 0 || rate > 1 {
			return nil, &rules.ConfigurationError{Field: field, Reason: "missingness rate must be in [0, 1]"}
		}
		if rate == 0 {
			continue
		}
		p.rates[field] = rate
		p.fields = append(p.fields, field)
	}
	sort.Strings(p.fields)
	return p, nil
}

// Fields returns the policed field names in traversal order.
func (p *MissingnessPolicy) Fields() []string {
	return p.fields
}

// Rate returns the injection probability for a field (0 if unpoliced).
func (p *MissingnessPolicy) Rate(field string) float64 {
	return p.rates[field]
}

// InjectMissing runs one independent Bernoulli trial per (record, policed
// field) and marks successes as missing. Fields absent from the policy are
// untouched; protected columns are skipped even if a policy somehow names
// them. Reproducible given the same seed: records are traversed in order,
// fields in the policy's sorted order.
func InjectMissing(profiles []*models.Profile, policy *MissingnessPolicy, rng *utils.Random) {
	if policy == nil {
		return
	}
	for _, p := range profiles {
		for _, field := range policy.Fields() {
			if protectedColumns[field] {
				continue
			}
			if rng.Probability(policy.Rate(field)) {
				p.MarkMissing(field)
			}
		}
	}
}
