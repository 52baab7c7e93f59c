package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists entries as pretty-printed JSON files for CLI usage.
// Entries are grouped in one subdirectory per endpoint family:
//
//	<root>/<family>/<digest>.json
//
// Writes go through a temp file and rename, so a crashed write never leaves
// a truncated entry behind. A corrupted entry is reported as a miss and left
// in place; the next refreshed fetch overwrites it.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{root: dir}, nil
}

// Dir returns the root directory entries are stored under.
func (s *FileStore) Dir() string {
	return s.root
}

// Load retrieves the entry for (family, digest).
func (s *FileStore) Load(ctx context.Context, family, digest string) ([]byte, bool, error) {
	path := s.path(family, digest)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if !json.Valid(data) {
		// Corrupted entry - treat as miss, surface the condition
		return nil, false, fmt.Errorf("corrupted cache entry: %s", path)
	}
	return data, true, nil
}

// Save stores the entry for (family, digest), pretty-printing the JSON and
// replacing any previous content.
func (s *FileStore) Save(ctx context.Context, family, digest string, data []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	dir := filepath.Join(s.root, family)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+digest+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(pretty.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(family, digest))
}

// Close does nothing for file stores.
func (s *FileStore) Close() error {
	return nil
}

// path converts an entry address to its file path.
func (s *FileStore) path(family, digest string) string {
	return filepath.Join(s.root, family, digest+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
