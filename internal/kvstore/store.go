// ABOUTME: Byte-oriented key-value store contract used by the key-value repository.
// ABOUTME: Implemented by a local Badger database and by the Charm Cloud KV client.
package kvstore

import "errors"

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Txn is the read-write view passed to Update.
type Txn interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

// Store is a key-value store with prefix scans and grouped writes.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys returns the keys starting with prefix in ascending byte order.
	Keys(prefix string) ([]string, error)
	// Update runs fn with a read-write view. Writes made by fn are applied
	// only when fn returns nil.
	Update(fn func(Txn) error) error
	Close() error
}
