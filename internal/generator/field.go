// Package generator contains the rule-driven engine: field value
// generation, identifier allocation, the balance model, MCAR injection and
// the profile/transaction assemblers that compose them.
package generator

import (
	"fmt"
	"strconv"

	"github.com/synthdata/bankgen/internal/rules"
	"github.com/synthdata/bankgen/internal/utils"
)

// Value is one generated column value. Str is the rendered CSV form; Int
// carries the numeric value for rules with numeric output.
type Value struct {
	Str     string
	Int     int64
	Numeric bool
}

// FieldGenerator produces column values from typed rules. It is a pure
// function of (rule, rng state) and keeps no per-row state.
type FieldGenerator struct {
	rng      *utils.Random
	catalogs rules.Catalogs
}

// NewFieldGenerator creates a field generator over the resolved catalogs.
func NewFieldGenerator(rng *utils.Random, catalogs rules.Catalogs) *FieldGenerator {
	return &FieldGenerator{rng: rng, catalogs: catalogs}
}

// Generate produces one value for the given rule, dispatching by kind.
func (g *FieldGenerator) Generate(spec rules.RuleSpec) (Value, error) {
	switch spec.Kind {
	case rules.KindList:
		vals, err := g.catalogs.Get(spec.Catalog)
		if err != nil {
			return Value{}, err
		}
		return Value{Str: g.rng.PickString(vals)}, nil

	case rules.KindRange, rules.KindFixedFormat:
		if spec.Min > spec.Max {
			return Value{}, fmt.Errorf("field %s: range %d-%d is inverted", spec.Field, spec.Min, spec.Max)
		}
		n := g.rng.Int64Range(spec.Min, spec.Max)
		return g.render(spec, n), nil

	case rules.KindDigits:
		if spec.Type == rules.TypeString {
			// String output permits leading zeros: any digit string of
			// the requested length.
			s := g.rng.NumericString(spec.Digits)
			n, _ := strconv.ParseInt(s, 10, 64)
			return Value{Str: s, Int: n, Numeric: true}, nil
		}
		low := pow10(spec.Digits - 1)
		high := pow10(spec.Digits) - 1
		n := g.rng.Int64Range(low, high)
		return g.render(spec, n), nil

	default:
		return Value{}, fmt.Errorf("field %s: unknown rule kind %q", spec.Field, spec.Kind)
	}
}

// render formats a drawn integer according to the rule's declared type.
func (g *FieldGenerator) render(spec rules.RuleSpec, n int64) Value {
	v := Value{Int: n, Numeric: true}
	if spec.Type == rules.TypeString && spec.Width > 0 {
		v.Str = fmt.Sprintf("%0*d", spec.Width, n)
	} else {
		v.Str = strconv.FormatInt(n, 10)
	}
	return v
}

// pow10 returns 10^n for small n.
func pow10(n int) int64 {
	result := int64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
