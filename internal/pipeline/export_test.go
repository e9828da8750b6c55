package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spawnscraper/internal"
)

func TestExportDatasetToXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "osrs-items.xlsx")
	ds := internal.IDDataset{
		1351: {{Lat: 3229, Lon: 3213, Qty: 1}, {Lat: 3230, Lon: 3214, Qty: 2}},
		-2:   {{Lat: 2852, Lon: 2954, Qty: 30}},
	}

	n, err := ExportDatasetToXLSX(ds, testIndex(), out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"item_id", "item_name", "lat", "lon", "qty"}, rows[0])
	assert.Equal(t, []string{"-2", "", "2852", "2954", "30"}, rows[1])
	assert.Equal(t, []string{"1351", "Bronze axe", "3229", "3213", "1"}, rows[2])
	assert.Equal(t, []string{"1351", "Bronze axe", "3230", "3214", "2"}, rows[3])
}
