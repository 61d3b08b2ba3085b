// Package store defines the durable key-value capability a watchlist session
// persists through, plus the bundled implementations. Values are opaque
// string blobs; the session layer decides what goes into them.
package store

// Store is the persistence contract a session depends on. Load reports
// ok=false when the key has never been written. Implementations are expected
// to treat errors as exceptional: a session degrades to in-memory-only
// operation when a Store misbehaves, it never fails the triggering operation.
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}
