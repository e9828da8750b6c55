package pipeline

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"spawnscraper/internal"
	"spawnscraper/internal/util"
)

// A coordinate group is "lat,lon" with an optional ",qty:n", closed by a pipe
// or a closing brace. Only the last repetition of the outer group is kept.
var locationPattern = regexp.MustCompile(`((?P<coord>[0-9]+,[0-9]+(?:,qty:[0-9]+)?))+(?:\||})`)

var coordGroup = locationPattern.SubexpIndex("coord")

// ExtractLocations walks text line by line and yields every coordinate group
// found on lines that carry template braces. Ranging over the result again
// starts a fresh scan. The first parse error is yielded and ends the sequence.
func ExtractLocations(text string) iter.Seq2[internal.SpawnLocation, error] {
	return func(yield func(internal.SpawnLocation, error) bool) {
		for lineNo, line := range util.SplitLines(text) {
			if !util.HasBrace(line) {
				continue
			}
			for _, m := range locationPattern.FindAllStringSubmatch(line, -1) {
				loc, err := parseCoord(m[coordGroup])
				if err != nil {
					yield(internal.SpawnLocation{}, fmt.Errorf("line %d: %w", lineNo+1, err))
					return
				}
				if !yield(loc, nil) {
					return
				}
			}
		}
	}
}

func ExtractAll(text string) ([]internal.SpawnLocation, error) {
	out := []internal.SpawnLocation{}
	for loc, err := range ExtractLocations(text) {
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

func parseCoord(coord string) (internal.SpawnLocation, error) {
	parts := strings.Split(coord, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return internal.SpawnLocation{}, fmt.Errorf("coordinate %q: want lat,lon[,qty:n]", coord)
	}

	lat, err := util.ParseInt(parts[0])
	if err != nil {
		return internal.SpawnLocation{}, fmt.Errorf("coordinate %q lat: %w", coord, err)
	}
	lon, err := util.ParseInt(parts[1])
	if err != nil {
		return internal.SpawnLocation{}, fmt.Errorf("coordinate %q lon: %w", coord, err)
	}

	qty := 1
	if len(parts) == 3 {
		qty, err = util.ParseInt(strings.TrimPrefix(parts[2], "qty:"))
		if err != nil {
			return internal.SpawnLocation{}, fmt.Errorf("coordinate %q qty: %w", coord, err)
		}
		if qty < 1 {
			return internal.SpawnLocation{}, fmt.Errorf("coordinate %q: qty must be at least 1", coord)
		}
	}

	return internal.SpawnLocation{Lat: lat, Lon: lon, Qty: qty}, nil
}
