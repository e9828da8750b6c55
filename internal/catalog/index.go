// Package catalog is the reference item set used to turn names into ids.
package catalog

import (
	"sort"

	"spawnscraper/internal"
)

type Index struct {
	EntriesByID map[int]internal.LookupEntry
	ByName      map[string][]internal.LookupEntry
}

func BuildIndex(entries []internal.LookupEntry) *Index {
	idx := &Index{
		EntriesByID: map[int]internal.LookupEntry{},
		ByName:      map[string][]internal.LookupEntry{},
	}

	sorted := make([]internal.LookupEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, e := range sorted {
		idx.EntriesByID[e.ID] = e
		idx.ByName[e.Name] = append(idx.ByName[e.Name], e)
	}
	return idx
}

// Candidates returns every entry whose name equals name exactly, ordered by id.
func (i *Index) Candidates(name string) []internal.LookupEntry {
	return i.ByName[name]
}

func (i *Index) Len() int {
	return len(i.EntriesByID)
}
