package storage

import "errors"

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("document not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrWrite wraps failures to persist a collection.
	ErrWrite = errors.New("storage write failed")
)

// Provider is a key-value document store. Each key holds one opaque JSON
// document; the core never sees files, tables or connection details.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
