// Package data holds the built-in reference labels the generator falls back
// to when a rules workbook does not supply its own catalog sheets. The data
// is embedded so the binary is self-contained.
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed catalogs/*.json
var dataFiles embed.FS

// ReferenceData holds the built-in catalogs and counterparty name parts.
type ReferenceData struct {
	Catalogs       map[string][]string
	Counterparties CounterpartyData
}

// CounterpartyData holds the name parts used to label transaction
// counterparties.
type CounterpartyData struct {
	FirstNames      []string `json:"first_names"`
	LastNames       []string `json:"last_names"`
	CompanyPrefixes []string `json:"company_prefixes"`
	CompanySuffixes []string `json:"company_suffixes"`
}

type catalogsFile struct {
	Catalogs map[string][]string `json:"catalogs"`
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load returns the embedded reference data. Thread-safe; parses once.
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (r *ReferenceData) loadAll() error {
	raw, err := dataFiles.ReadFile("catalogs/catalogs.json")
	if err != nil {
		return fmt.Errorf("failed to read catalogs.json: %w", err)
	}
	var cf catalogsFile
	if err := json.Unmarshal(raw, &cf); err != nil {
		return fmt.Errorf("failed to parse catalogs.json: %w", err)
	}
	r.Catalogs = cf.Catalogs

	raw, err = dataFiles.ReadFile("catalogs/counterparties.json")
	if err != nil {
		return fmt.Errorf("failed to read counterparties.json: %w", err)
	}
	if err := json.Unmarshal(raw, &r.Counterparties); err != nil {
		return fmt.Errorf("failed to parse counterparties.json: %w", err)
	}

	return nil
}

// Catalog returns the built-in labels for a catalog name.
func (r *ReferenceData) Catalog(name string) ([]string, bool) {
	vals, ok := r.Catalogs[name]
	return vals, ok
}
