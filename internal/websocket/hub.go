package websocket

import (
	"sync"

	"github.com/bhandras/inkwire/pkg/wire"
)

// Hub tracks the active connections of every session and owns the
// per-session processing boundary.
//
// Each session has a single process lock held for the whole handling of one
// inbound message (session mutation plus resulting broadcasts) and for the
// join sequence (registration plus sync snapshot). That makes every
// connection observe commit/undo/redo events in strictly increasing seq
// order, and makes a join snapshot consistent with the broadcasts that
// follow it.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*sessionConns
}

type sessionConns struct {
	// proc is the per-session processing boundary.
	proc sync.Mutex

	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*sessionConns)}
}

func (h *Hub) state(sessionID string) *sessionConns {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.sessions[sessionID]
	if !ok {
		st = &sessionConns{conns: make(map[string]*Conn)}
		h.sessions[sessionID] = st
	}
	return st
}

// Run executes fn while holding the session's processing boundary.
func (h *Hub) Run(sessionID string, fn func()) {
	st := h.state(sessionID)
	st.proc.Lock()
	defer st.proc.Unlock()
	fn()
}

// Add registers a connection with its session. Callers join inside Run.
func (h *Hub) Add(conn *Conn) {
	st := h.state(conn.sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.conns[conn.id] = conn
}

// Remove unregisters a connection. The per-session entry itself is kept even
// when empty; like the registry, the hub has no session eviction.
func (h *Hub) Remove(conn *Conn) {
	h.mu.Lock()
	st, ok := h.sessions[conn.sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	st.mu.Lock()
	delete(st.conns, conn.id)
	st.mu.Unlock()
}

// Emit sends an envelope to every connection in a session, optionally
// skipping one connection id (the originator of a relay).
func (h *Hub) Emit(sessionID string, env wire.Envelope, skipConnID string) {
	h.mu.Lock()
	st, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return
	}
	st.mu.RLock()
	targets := make([]*Conn, 0, len(st.conns))
	for _, c := range st.conns {
		if c.id == skipConnID {
			continue
		}
		targets = append(targets, c)
	}
	st.mu.RUnlock()

	for _, c := range targets {
		c.Send(env)
	}
}

// ConnectionCount returns the number of connections in a session.
func (h *Hub) ConnectionCount(sessionID string) int {
	h.mu.Lock()
	st, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.conns)
}
