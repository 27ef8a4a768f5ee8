// Package storage provides the process-wide key-value persistence medium.
// Values are whole serialized documents; every mutation rewrites the full
// document under its key.
package storage

// Keys used by the account and session layers.
const (
	UsersKey   = "users"
	SessionKey = "session"
)

type Store interface {
	// Get returns the value under key. A missing key is ("", false, nil);
	// err reports a medium failure only.
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}
