package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"spawnscraper/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS spawns (
  itemId INTEGER NOT NULL,
  ord INTEGER NOT NULL,
  lat INTEGER NOT NULL,
  lon INTEGER NOT NULL,
  qty INTEGER NOT NULL,
  PRIMARY KEY(itemId, ord)
);
CREATE INDEX IF NOT EXISTS idx_spawns_coord ON spawns(lat, lon);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceSpawns swaps the stored dataset for ds in one transaction.
func (d *DB) ReplaceSpawns(ds internal.IDDataset) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM spawns`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO spawns (itemId, ord, lat, lon, qty) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	ids := make([]int, 0, len(ds))
	for id := range ds {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		for ord, loc := range ds[id] {
			if _, err := stmt.Exec(id, ord, loc.Lat, loc.Lon, loc.Qty); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (d *DB) ListSpawns() (internal.IDDataset, error) {
	rows, err := d.conn.Query(`SELECT itemId, lat, lon, qty FROM spawns ORDER BY itemId, ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := internal.IDDataset{}
	for rows.Next() {
		var row internal.SpawnRow
		if err := rows.Scan(&row.ItemID, &row.Lat, &row.Lon, &row.Qty); err != nil {
			return nil, err
		}
		out[row.ItemID] = append(out[row.ItemID], internal.SpawnLocation{Lat: row.Lat, Lon: row.Lon, Qty: row.Qty})
	}
	return out, rows.Err()
}

// SpawnAt returns the spawn registered for a coordinate. When several items
// share a coordinate the lowest item id wins, mirroring a first-in map fill.
func (d *DB) SpawnAt(lat, lon int) (*internal.SpawnRow, error) {
	var row internal.SpawnRow
	err := d.conn.QueryRow(`
SELECT itemId, lat, lon, qty FROM spawns
WHERE lat = ? AND lon = ?
ORDER BY itemId, ord
LIMIT 1
`, lat, lon).Scan(&row.ItemID, &row.Lat, &row.Lon, &row.Qty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// IsNaturalSpawn reports whether an item stack on the ground at (lat, lon)
// matches the registered spawn in both id and quantity.
func (d *DB) IsNaturalSpawn(lat, lon, itemID, qty int) (bool, error) {
	row, err := d.SpawnAt(lat, lon)
	if err != nil || row == nil {
		return false, err
	}
	return row.ItemID == itemID && row.Qty == qty, nil
}

func (d *DB) InsertRun(traceID string, counts internal.RunCounts, timings map[string]float64) error {
	countsJSON, _ := json.Marshal(counts)
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, countsJson, timingsJson) VALUES (?, ?, ?)`, traceID, string(countsJSON), string(timingsJSON))
	return err
}

func (d *DB) CountRuns() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
