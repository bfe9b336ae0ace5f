// Package rules turns the free-text generation rules found in the rules
// workbook into a small closed set of typed rule variants, resolved once at
// load time. Anything the parser does not recognize is rejected up front
// instead of silently producing blank columns.
package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// DataType is the declared output type of a generated column.
type DataType string

const (
	TypeString DataType = "string"
	TypeInt    DataType = "int"
	TypeFloat  DataType = "float"
)

// RuleKind identifies how a column's values are produced.
type RuleKind string

const (
	// KindList samples uniformly from a named catalog.
	KindList RuleKind = "list"
	// KindRange samples uniformly from an explicit [min, max] range.
	KindRange RuleKind = "range"
	// KindDigits samples an N-digit number.
	KindDigits RuleKind = "digits"
	// KindFixedFormat is the degenerate small-range form used for
	// shorthand rule text such as "two digit number".
	KindFixedFormat RuleKind = "fixed_format"
)

// RuleSpec is the parsed, typed generation contract for one field.
// Exactly one kind-specific payload is populated: Catalog for KindList,
// Min/Max for KindRange and KindFixedFormat, Digits for KindDigits.
type RuleSpec struct {
	Field string
	Type  DataType
	Kind  RuleKind

	Catalog string // KindList: catalog name
	Min     int64  // KindRange, KindFixedFormat
	Max     int64  // KindRange, KindFixedFormat
	Digits  int    // KindDigits: digit count

	// Width is the zero-pad width applied when Type is string.
	// For ranges it is implied by the textual max bound.
	Width int
}

// RuleSet is an ordered rule table; order fixes the output column order.
type RuleSet struct {
	Specs []RuleSpec
}

// Get returns the rule for a field name, if present.
func (rs *RuleSet) Get(field string) (RuleSpec, bool) {
	for _, s := range rs.Specs {
		if s.Field == field {
			return s, true
		}
	}
	return RuleSpec{}, false
}

// Fields returns the field names in table order.
func (rs *RuleSet) Fields() []string {
	out := make([]string, len(rs.Specs))
	for i, s := range rs.Specs {
		out[i] = s.Field
	}
	return out
}

// Known catalog aliases as they appear in workbook rule text.
var catalogAliases = map[string]string{
	"occu":         CatalogOccupation,
	"occupation":   CatalogOccupation,
	"state":        CatalogState,
	"acc_type":     CatalogAccountType,
	"account_type": CatalogAccountType,
	"channel":      CatalogChannel,
}

var digitRulePattern = regexp.MustCompile(`(\d+)\s*[- ]?\s*digit`)

// ParseRule turns one workbook row into a typed RuleSpec.
// ruleText and rangeText are the raw cell contents; both may carry the
// loose phrasing the workbook uses ("random 8 digit number",
// "based on listing occu", "10 - 99").
func ParseRule(field, dataType, ruleText, rangeText string) (RuleSpec, error) {
	if strings.TrimSpace(field) == "" {
		return RuleSpec{}, configErrorf("", "rule row has empty field name")
	}

	dtype, err := parseDataType(field, dataType)
	if err != nil {
		return RuleSpec{}, err
	}

	rule := strings.ToLower(strings.TrimSpace(ruleText))
	rangeText = strings.TrimSpace(rangeText)

	spec := RuleSpec{Field: field, Type: dtype}

	// Listing-based rules resolve to a catalog.
	if strings.Contains(rule, "listing") {
		catalog := catalogFromRule(rule, field)
		if catalog == "" {
			return RuleSpec{}, configErrorf(field, "listing rule %q names no known catalog", ruleText)
		}
		spec.Kind = KindList
		spec.Catalog = catalog
		return spec, nil
	}

	// Explicit numeric range, e.g. "10000000 - 99999999".
	if (strings.Contains(rule, "random") || strings.Contains(rule, "range")) && strings.Contains(rangeText, "-") {
		min, max, width, err := parseBounds(field, rangeText)
		if err != nil {
			return RuleSpec{}, err
		}
		spec.Kind = KindRange
		spec.Min = min
		spec.Max = max
		spec.Width = width
		return spec, nil
	}

	// "N digit" shorthand.
	if m := digitRulePattern.FindStringSubmatch(rule); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return RuleSpec{}, configErrorf(field, "invalid digit count in rule %q", ruleText)
		}
		if n > 18 {
			return RuleSpec{}, configErrorf(field, "digit count %d exceeds int64 capacity", n)
		}
		spec.Kind = KindDigits
		spec.Digits = n
		spec.Width = n
		return spec, nil
	}

	// Spelled-out two-digit shorthand kept from the legacy workbook.
	if strings.Contains(rule, "two digit") || strings.Contains(rule, "two-digit") {
		spec.Kind = KindFixedFormat
		spec.Min = 10
		spec.Max = 99
		spec.Width = 2
		return spec, nil
	}

	return RuleSpec{}, configErrorf(field, "unrecognized rule text %q", ruleText)
}

func parseDataType(field, raw string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "string", "str", "text":
		return TypeString, nil
	case "int", "integer", "number":
		return TypeInt, nil
	case "float", "double", "decimal":
		return TypeFloat, nil
	case "":
		return "", configErrorf(field, "missing data type")
	default:
		return "", configErrorf(field, "unknown data type %q", raw)
	}
}

// catalogFromRule extracts the catalog a listing rule refers to, first from
// the rule text itself, then from the field name.
func catalogFromRule(rule, field string) string {
	for alias, canonical := range catalogAliases {
		if strings.Contains(rule, alias) {
			return canonical
		}
	}
	lower := strings.ToLower(field)
	switch {
	case strings.Contains(lower, "occupation"):
		return CatalogOccupation
	case strings.Contains(lower, "state"):
		return CatalogState
	case strings.Contains(lower, "account"):
		return CatalogAccountType
	case strings.Contains(lower, "channel"):
		return CatalogChannel
	}
	return ""
}

func parseBounds(field, rangeText string) (min, max int64, width int, err error) {
	parts := strings.SplitN(rangeText, "-", 2)
	if len(parts) != 2 {
		return 0, 0, 0, configErrorf(field, "range %q is not of the form \"min - max\"", rangeText)
	}
	minStr := strings.TrimSpace(parts[0])
	maxStr := strings.TrimSpace(parts[1])

	min, err = strconv.ParseInt(minStr, 10, 64)
	if err != nil {
		return 0, 0, 0, configErrorf(field, "range lower bound %q is not an integer", minStr)
	}
	max, err = strconv.ParseInt(maxStr, 10, 64)
	if err != nil {
		return 0, 0, 0, configErrorf(field, "range upper bound %q is not an integer", maxStr)
	}
	if min > max {
		return 0, 0, 0, configErrorf(field, "range lower bound %d exceeds upper bound %d", min, max)
	}

	width = len(minStr)
	if len(maxStr) > width {
		width = len(maxStr)
	}
	return min, max, width, nil
}

// Validate checks the whole rule table against the resolved catalogs.
// All problems are reported before any row is generated.
func (rs *RuleSet) Validate(catalogs Catalogs) error {
	if len(rs.Specs) == 0 {
		return configErrorf("", "rule table is empty")
	}

	seen := make(map[string]bool, len(rs.Specs))
	for _, s := range rs.Specs {
		if seen[s.Field] {
			return configErrorf(s.Field, "duplicate rule for field")
		}
		seen[s.Field] = true

		switch s.Kind {
		case KindList:
			if _, err := catalogs.Get(s.Catalog); err != nil {
				return err
			}
		case KindRange, KindFixedFormat:
			if s.Min > s.Max {
				return configErrorf(s.Field, "range lower bound %d exceeds upper bound %d", s.Min, s.Max)
			}
		case KindDigits:
			if s.Digits <= 0 {
				return configErrorf(s.Field, "digit count must be positive, got %d", s.Digits)
			}
		default:
			return configErrorf(s.Field, "unknown rule kind %q", s.Kind)
		}
	}
	return nil
}
