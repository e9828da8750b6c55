package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"spawnscraper/internal"
)

// LoadFile reads the reference set, a JSON object keyed by item id. The id
// inside each entry is the one used for resolution.
func LoadFile(path string) (*Index, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lookup set: %w", err)
	}
	return Parse(blob)
}

func Parse(blob []byte) (*Index, error) {
	raw := map[int]internal.LookupEntry{}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("decode lookup set: %w", err)
	}
	entries := make([]internal.LookupEntry, 0, len(raw))
	for _, entry := range raw {
		entries = append(entries, entry)
	}
	return BuildIndex(entries), nil
}
