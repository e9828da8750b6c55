package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lookupJSON = `{
  "1351": {"id": 1351, "name": "Bronze axe", "type": "normal", "duplicate": false},
  "1352": {"id": 1352, "name": "Bronze axe", "type": "noted", "duplicate": true},
  "995": {"id": 995, "name": "Coins", "type": "normal", "duplicate": false}
}`

func TestParse(t *testing.T) {
	idx, err := Parse([]byte(lookupJSON))
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	axes := idx.Candidates("Bronze axe")
	require.Len(t, axes, 2)
	assert.Equal(t, 1351, axes[0].ID)
	assert.Equal(t, 1352, axes[1].ID)
	assert.True(t, axes[1].Duplicate)
	assert.Equal(t, "noted", axes[1].Type)

	assert.Empty(t, idx.Candidates("bronze axe"))
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"x": {"id": 2}}`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items-search.json")
	require.NoError(t, os.WriteFile(path, []byte(lookupJSON), 0o644))

	idx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, idx.Candidates("Coins"), 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
