package storage

import "errors"

var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the local-storage port the domain services persist through:
// string keys mapped to string values, no schema, no transactions across
// keys. Get returns ErrKeyNotFound when the key is absent.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
