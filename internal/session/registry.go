package session

import "sync"

// Registry maps session ids to their single Session instance. Entries are
// created lazily on first access and live for the process lifetime; there is
// deliberately no eviction policy (unbounded growth over long uptimes is a
// known limitation of the design, not something this layer papers over).
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// GetOrCreate resolves a session id to its Session, creating it on first
// reference. Concurrent first joins for the same id resolve to the same
// instance.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	r.sessions[id] = s
	return s
}

// Lookup returns the session for an id without creating one.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
