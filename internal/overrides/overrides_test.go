package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Len(t, table, 24)

	value, ok := table.Lookup("Tiles (Rogues' Den)")
	require.True(t, ok)
	assert.Equal(t, "5569,5570,5571", value)

	value, ok = table.Lookup("Holy Grail (item)")
	require.True(t, ok)
	assert.Equal(t, "Holy Grail", value)

	value, ok = table.Lookup("Bones (Ape Atoll)")
	require.True(t, ok)
	assert.Equal(t, "-1", value)
}

func TestLookupIsExact(t *testing.T) {
	table := Default()
	for _, name := range []string{"attack potion", "Attack potion ", "Tiles", "Rat"} {
		_, ok := table.Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestParseRejectsEmptyValue(t *testing.T) {
	_, err := Parse([]byte(`"Foo": ""`))
	require.Error(t, err)

	_, err = Parse([]byte(`: [`))
	require.Error(t, err)
}
