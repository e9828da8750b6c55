// Package sources reads and writes the list of wiki pages to scrape.
//
// Each line of the list embeds the page URL as its first quoted value and the
// item display name as its second, e.g.
//
//	<a href="https://oldschool.runescape.wiki/w/Bronze_axe?action=raw" title="Bronze axe">Bronze axe</a>
package sources

import (
	"errors"
	"fmt"
	"os"

	"spawnscraper/internal"
	"spawnscraper/internal/util"
)

var ErrMalformedSourceLine = errors.New("malformed source line")

func LoadFile(path string) ([]internal.NameRecord, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source list: %w", err)
	}
	return Parse(string(blob))
}

// Parse skips blank lines; any other line without both quoted values fails.
func Parse(text string) ([]internal.NameRecord, error) {
	out := []internal.NameRecord{}
	for i, line := range util.SplitLines(text) {
		if util.IsBlank(line) {
			continue
		}
		url, okURL := util.QuotedField(line, 1)
		name, okName := util.QuotedField(line, 3)
		if !okURL || !okName {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedSourceLine, i+1, line)
		}
		out = append(out, internal.NameRecord{DisplayName: name, SourceID: url})
	}
	return out, nil
}
