// Package overrides holds the curated name corrections applied before id lookup.
package overrides

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed overrides.yaml
var defaultYAML []byte

// Table maps a display name to its replacement token.
type Table map[string]string

// Default parses the table compiled into the binary. The embedded file is
// part of the build, so a parse failure is a programming error.
func Default() Table {
	table, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("overrides: embedded table: %v", err))
	}
	return table
}

func Parse(data []byte) (Table, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	table := make(Table, len(raw))
	for name, value := range raw {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("override %q has an empty value", name)
		}
		table[name] = value
	}
	return table, nil
}

// Lookup is an exact match; no trimming or case folding.
func (t Table) Lookup(name string) (string, bool) {
	value, ok := t[name]
	return value, ok
}
