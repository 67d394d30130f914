// Package replica holds the client-side mirror of a session's authoritative
// operation log.
package replica

import (
	"sync"

	"github.com/bhandras/inkwire/pkg/wire"
)

// Mirror reproduces the authoritative log from sync/commit/undo/redo events.
// It is a pure state container: it never mints sequence numbers and makes no
// protocol decisions. It relies on the server never sending removals out of
// causal order.
//
// Mirror is safe for concurrent use; renderers read it from their own
// goroutine.
type Mirror struct {
	mu  sync.RWMutex
	ops []wire.Operation
}

// New creates an empty mirror.
func New() *Mirror {
	return &Mirror{}
}

// ReplaceAll replaces the mirrored history wholesale; applied on sync.
func (m *Mirror) ReplaceAll(ops []wire.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = make([]wire.Operation, len(ops))
	copy(m.ops, ops)
}

// Append adds one operation; applied on commit and redo broadcasts.
func (m *Mirror) Append(op wire.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

// RemoveByID filters out the operation with the given id; applied on undo
// broadcasts. The undo broadcast carries the removed operation's original
// seq, which may be lower than seqs already observed; removal is keyed on id
// for exactly that reason. Removing an unknown id is a no-op.
func (m *Mirror) RemoveByID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.ops[:0]
	for _, op := range m.ops {
		if op.ID != id {
			kept = append(kept, op)
		}
	}
	m.ops = kept
}

// Snapshot returns a copy of the mirrored history for a renderer.
func (m *Mirror) Snapshot() []wire.Operation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]wire.Operation, len(m.ops))
	copy(out, m.ops)
	return out
}

// Len returns the number of mirrored operations.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ops)
}

// VisibleStrokes folds the mirrored history into the visible stroke set.
//
// The fold is intentionally a second implementation of the server-side
// reduction rather than shared code: two replicas holding the same sequence
// must derive the same strokes, and the tests hold both implementations to
// that.
func (m *Mirror) VisibleStrokes() []wire.Stroke {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := make(map[string]wire.Stroke)
	order := make([]string, 0, len(m.ops))
	for _, op := range m.ops {
		switch op.Kind {
		case wire.OpAddStroke:
			if op.Stroke == nil {
				continue
			}
			if _, exists := byID[op.Stroke.ID]; !exists {
				order = append(order, op.Stroke.ID)
			}
			byID[op.Stroke.ID] = *op.Stroke
		case wire.OpRemoveStroke:
			delete(byID, op.StrokeID)
		}
	}
	out := make([]wire.Stroke, 0, len(byID))
	emitted := make(map[string]bool, len(byID))
	for _, id := range order {
		if emitted[id] {
			continue
		}
		if s, ok := byID[id]; ok {
			emitted[id] = true
			out = append(out, s)
		}
	}
	return out
}
