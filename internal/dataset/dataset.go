// Package dataset reads and writes the spawn datasets. Both files wrap the map
// in an "Items" object, which is the layout the game client plugin loads.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"spawnscraper/internal"
)

type nameFile struct {
	Items internal.NameDataset `json:"Items"`
}

type idFile struct {
	Items internal.IDDataset `json:"Items"`
}

// Exists is the whole cache policy: any file at path counts as a hit.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func ReadNames(path string) (internal.NameDataset, error) {
	var f nameFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	if f.Items == nil {
		f.Items = internal.NameDataset{}
	}
	return f.Items, nil
}

func WriteNames(path string, ds internal.NameDataset) error {
	items := make(internal.NameDataset, len(ds))
	for k, v := range ds {
		items[k] = nonNil(v)
	}
	return writeJSON(path, nameFile{Items: items})
}

func ReadIDs(path string) (internal.IDDataset, error) {
	var f idFile
	if err := readJSON(path, &f); err != nil {
		return nil, err
	}
	if f.Items == nil {
		f.Items = internal.IDDataset{}
	}
	return f.Items, nil
}

func WriteIDs(path string, ds internal.IDDataset) error {
	items := make(internal.IDDataset, len(ds))
	for k, v := range ds {
		items[k] = nonNil(v)
	}
	return writeJSON(path, idFile{Items: items})
}

// FileSHA256 hashes a file's content, hex encoded.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func readJSON(path string, v any) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path through a temp file and rename, so an existing file
// is either fully replaced or left as it was.
func writeJSON(path string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func nonNil(locs []internal.SpawnLocation) []internal.SpawnLocation {
	if locs == nil {
		return []internal.SpawnLocation{}
	}
	return locs
}
