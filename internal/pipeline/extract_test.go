package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spawnscraper/internal"
)

func TestExtractWithQty(t *testing.T) {
	locs, err := ExtractAll("{{Spawn|1,2,qty:5}}")
	require.NoError(t, err)
	assert.Equal(t, []internal.SpawnLocation{{Lat: 1, Lon: 2, Qty: 5}}, locs)
}

func TestExtractDefaultQty(t *testing.T) {
	locs, err := ExtractAll("{{Spawn|3,4}}")
	require.NoError(t, err)
	assert.Equal(t, []internal.SpawnLocation{{Lat: 3, Lon: 4, Qty: 1}}, locs)
}

func TestExtractCountsAndOrder(t *testing.T) {
	page := strings.Join([]string{
		"==Item spawns==",
		"{{ItemSpawnTableHead}}",
		"{{ItemSpawnLine|name=Bronze axe|location=[[Lumbridge]]|members=No|3229,3213|3230,3214,qty:2|plane=0}}",
		"Lumbridge 1,2| has no braces so it is skipped",
		"{{ItemSpawnLine|name=Bronze axe|location=[[Varrock]]|3200,3400}}",
		"{{ItemSpawnTableBottom}}",
		"",
	}, "\r\n")

	locs, err := ExtractAll(page)
	require.NoError(t, err)
	assert.Equal(t, []internal.SpawnLocation{
		{Lat: 3229, Lon: 3213, Qty: 1},
		{Lat: 3230, Lon: 3214, Qty: 2},
		{Lat: 3200, Lon: 3400, Qty: 1},
	}, locs)
}

func TestExtractManyGroupsPerLine(t *testing.T) {
	lines := []string{}
	want := 0
	for k := 1; k <= 4; k++ {
		groups := make([]string, 0, k)
		for j := 0; j < k; j++ {
			groups = append(groups, "10,20")
		}
		lines = append(lines, "{{X|"+strings.Join(groups, "|")+"}}")
		want += k
	}

	locs, err := ExtractAll(strings.Join(lines, "\n"))
	require.NoError(t, err)
	assert.Len(t, locs, want)
}

func TestExtractIgnoresUnterminatedGroup(t *testing.T) {
	locs, err := ExtractAll("{{Spawn|plane=0|5,6 trailing text")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestExtractOverflowFails(t *testing.T) {
	_, err := ExtractAll("{{Spawn|1,2|99999999999999999999999,4}}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestExtractZeroQtyFails(t *testing.T) {
	_, err := ExtractAll("{{Spawn|1,2,qty:0}}")
	require.Error(t, err)
}

func TestExtractLocationsIsRestartable(t *testing.T) {
	seq := ExtractLocations("{{Spawn|1,2|3,4}}\n{{Spawn|5,6}}")

	collect := func() []internal.SpawnLocation {
		out := []internal.SpawnLocation{}
		for loc, err := range seq {
			require.NoError(t, err)
			out = append(out, loc)
		}
		return out
	}
	first := collect()
	assert.Len(t, first, 3)
	assert.Equal(t, first, collect())

	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
