package rules

import (
	"github.com/synthdata/bankgen/internal/data"
)

// Canonical catalog names.
const (
	CatalogOccupation  = "occupation"
	CatalogState       = "state"
	CatalogAccountType = "account_type"
	CatalogChannel     = "channel"
)

// Catalogs maps catalog names to their ordered, de-duplicated label lists.
// Workbook sheets override the built-in defaults; catalogs the workbook
// omits keep the embedded defaults.
type Catalogs map[string][]string

// ResolveCatalogs overlays workbook-supplied catalogs on the embedded
// defaults. overrides may be nil when no workbook was given.
func ResolveCatalogs(overrides map[string][]string) (Catalogs, error) {
	ref, err := data.Load()
	if err != nil {
		return nil, err
	}

	resolved := make(Catalogs, len(ref.Catalogs))
	for name, vals := range ref.Catalogs {
		resolved[name] = vals
	}
	for name, vals := range overrides {
		if len(vals) == 0 {
			// Empty sheet: keep the default rather than poisoning the run.
			continue
		}
		resolved[name] = dedupe(vals)
	}
	return resolved, nil
}

// Get returns the labels for a catalog, or a ConfigurationError if the
// catalog is unknown or empty.
func (c Catalogs) Get(name string) ([]string, error) {
	vals, ok := c[name]
	if !ok {
		return nil, configErrorf(name, "catalog is not defined and has no built-in default")
	}
	if len(vals) == 0 {
		return nil, configErrorf(name, "catalog resolves to an empty list")
	}
	return vals, nil
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
