package pipeline

import (
	"spawnscraper/internal"
	"spawnscraper/internal/overrides"
)

type Normalizer struct {
	table overrides.Table
}

func NewNormalizer(table overrides.Table) *Normalizer {
	return &Normalizer{table: table}
}

// Normalize returns the override for name, or name itself when the table has
// no exact entry for it.
func (n *Normalizer) Normalize(name string) string {
	if value, ok := n.table.Lookup(name); ok {
		return value
	}
	return name
}

type NormalizedRecord struct {
	internal.NameRecord
	Token string
}

func (n *Normalizer) NormalizeRecords(records []internal.NameRecord) []NormalizedRecord {
	out := make([]NormalizedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, NormalizedRecord{NameRecord: rec, Token: n.Normalize(rec.DisplayName)})
	}
	return out
}
