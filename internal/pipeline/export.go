package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"spawnscraper/internal"
	"spawnscraper/internal/catalog"
)

// ExportDatasetToXLSX writes one row per spawn location, sorted by item id.
// index may be nil; when set, the item name column is filled in.
func ExportDatasetToXLSX(ds internal.IDDataset, index *catalog.Index, outputPath string) (int, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"item_id", "item_name", "lat", "lon", "qty"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	ids := make([]int, 0, len(ds))
	for id := range ds {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	r := 1
	for _, id := range ids {
		name := ""
		if index != nil {
			if entry, ok := index.EntriesByID[id]; ok {
				name = entry.Name
			}
		}
		for _, loc := range ds[id] {
			r++
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(sheet, cell, value)
			}
			set(1, id)
			set(2, name)
			set(3, loc.Lat)
			set(4, loc.Lon)
			set(5, loc.Qty)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return 0, err
	}
	return r - 1, f.SaveAs(outputPath)
}
