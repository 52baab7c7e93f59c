// Package cache provides the persistent response cache used by the OpenDota
// client.
//
// Entries are addressed by an endpoint family (the cache subdirectory) and a
// request identity digest (see [Key]). Entries never expire: once written,
// a response is served from cache until it is explicitly overwritten by a
// refreshed fetch.
//
// Backends:
//   - file: pretty-printed JSON files for CLI usage (the default)
//   - redis: shared storage for multi-instance deployments
//   - null: no-op storage for disabling the cache entirely
package cache

import (
	"context"
	"os"
	"path/filepath"
)

// Store is the persistence contract for cached API responses.
//
// All implementations are safe for concurrent use.
type Store interface {
	// Load retrieves the entry for (family, digest).
	//
	// A missing entry returns (nil, false, nil). An unreadable or corrupted
	// entry is also reported as a miss, with the underlying error returned
	// alongside so callers can surface it; it is never fatal.
	Load(ctx context.Context, family, digest string) ([]byte, bool, error)

	// Save stores the entry for (family, digest), replacing any previous
	// content.
	Save(ctx context.Context, family, digest string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// DefaultDir returns the default cache location, <user cache dir>/opendota
// (~/.cache/opendota on Linux).
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "opendota"), nil
}
