package store

import "errors"

// Keys under which the session layer persists its durable state.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is the durable local cache for the bearer token and last-known
// profile. It is the Go counterpart of the browser's localStorage slice.
type Store interface {
	Close() error
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
