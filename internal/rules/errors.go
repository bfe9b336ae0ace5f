package rules

import "fmt"

// ConfigurationError reports a malformed or missing rule/catalog entry.
// It is fatal: generation never starts with an invalid rule table.
type ConfigurationError struct {
	Field  string // field or catalog name, empty if file-level
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
