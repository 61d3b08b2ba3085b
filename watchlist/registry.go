package watchlist

import "sync"

// Process-wide session registry. Consumers that cannot take an explicit
// Session reference resolve one here by watchlist id, with explicit
// registration and teardown instead of ambient shared state.
var (
	registry   = make(map[string]*Session)
	registryMu sync.Mutex
)

// Register makes a session resolvable by its watchlist id. A later
// registration for the same id replaces the earlier one.
func Register(s *Session) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.ID()] = s
}

// Lookup resolves a registered session by watchlist id.
func Lookup(id string) (*Session, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	s, ok := registry[id]
	return s, ok
}

// Deregister removes a session from the registry.
func Deregister(id string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, id)
}
