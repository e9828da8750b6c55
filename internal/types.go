package internal

// SpawnLocation is one place an item appears on the world map.
type SpawnLocation struct {
	Lat int `json:"lat"`
	Lon int `json:"lon"`
	Qty int `json:"qty"`
}

type NameRecord struct {
	DisplayName string
	SourceID    string
}

type LookupEntry struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Duplicate bool   `json:"duplicate"`
}

// NameDataset is keyed by the normalized display token. A token may hold
// several comma separated ids until it is resolved.
type NameDataset map[string][]SpawnLocation

type IDDataset map[int][]SpawnLocation

type SpawnRow struct {
	ItemID int
	Lat    int
	Lon    int
	Qty    int
}

type RunCounts struct {
	Sources   int
	Names     int
	Items     int
	Locations int
	FromCache bool
}
