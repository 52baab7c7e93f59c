package cache

import "context"

// NullStore is a no-op store that never persists anything.
// Useful for testing or when caching should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Load always reports a miss.
func (s *NullStore) Load(ctx context.Context, family, digest string) ([]byte, bool, error) {
	return nil, false, nil
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, family, digest string, data []byte) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
