package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing store has not been created yet
var ErrNotInitialized = errors.New("storage not initialized, run 'tinywins init' first")

// Provider is a key-value blob store. The application keeps its whole state
// in a single key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs. Get returns nil, nil for a key that was never written.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error

	// Utils
	Backend() string
	GetConfigPath() string
}
