// Package storage provides the origin-scoped key-value store the portal keeps
// all of its state in. The contract mirrors a browser's local storage: string
// keys, string values, last write wins.
package storage

import "errors"

// Store is a string-keyed persistent key-value store.
type Store interface {
	// GetItem returns the value stored under key. ok is false when the key is
	// absent.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error
	Close() error
}

var ErrClosed = errors.New("storage closed")
