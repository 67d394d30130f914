package session

import (
	"sync"

	"github.com/bhandras/inkwire/internal/logger"
	"github.com/bhandras/inkwire/pkg/wire"
)

// Session is one isolated collaborative canvas: an authoritative log plus
// the open stream buffers of its connections.
//
// A single coarse mutex guards both. Every inbound message mutates the
// session through exactly one method call, so one message is always fully
// processed before the next regardless of how many connection goroutines
// feed the session.
type Session struct {
	id string

	mu      sync.Mutex
	log     *Log
	streams *streamSet
}

// Stats is a point-in-time summary of a session, served by the HTTP API.
type Stats struct {
	ID          string `json:"id"`
	Operations  int    `json:"operations"`
	Strokes     int    `json:"strokes"`
	RedoDepth   int    `json:"redoDepth"`
	OpenStreams int    `json:"openStreams"`
}

func newSession(id string) *Session {
	return &Session{
		id:      id,
		log:     NewLog(),
		streams: newStreamSet(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StartStroke opens a stream buffer for an in-progress stroke.
func (s *Session) StartStroke(connID, strokeID, color string, size float64, first wire.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams.start(connID, strokeID, color, size, first)
}

// AppendStrokePoints adds a point batch to an open stroke. Batches for an
// unknown stroke are dropped: a move can race the buffer's removal, which is
// a protocol hiccup rather than an error.
func (s *Session) AppendStrokePoints(connID, strokeID string, points []wire.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.streams.appendPoints(connID, strokeID, points)
	if !ok {
		logger.Debugf("session %s: dropped %d points for unknown stroke %s (conn %s)",
			s.id, len(points), strokeID, connID)
	}
	return ok
}

// EndStroke consumes an open buffer, commits the completed stroke as an add
// operation, and returns the sequenced operation. Returns false when the
// buffer does not exist (e.g. an end replayed after a disconnect cleanup).
func (s *Session) EndStroke(connID, strokeID string) (wire.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stroke, ok := s.streams.end(connID, strokeID)
	if !ok {
		logger.Debugf("session %s: end for unknown stroke %s (conn %s)", s.id, strokeID, connID)
		return wire.Operation{}, false
	}
	return s.log.Append(AddStrokeDraft(stroke)), true
}

// EraseStroke commits a remove operation for a stroke. The fold treats
// removal of an absent stroke as a no-op, so no existence check is needed.
func (s *Session) EraseStroke(strokeID string) wire.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Append(RemoveStrokeDraft(strokeID))
}

// Undo pops the latest operation from history. Returns false when history
// is empty; an empty history is a valid steady state, not an error.
func (s *Session) Undo() (wire.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Undo()
}

// Redo re-appends the latest undone operation under a fresh seq. Returns
// false when the redo stack is empty.
func (s *Session) Redo() (wire.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Redo()
}

// SnapshotOps returns a copy of the full history in seq order.
func (s *Session) SnapshotOps() []wire.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Snapshot()
}

// VisibleStrokes folds the history into the current canvas contents.
func (s *Session) VisibleStrokes() []wire.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.VisibleStrokes()
}

// DropConnection discards all open stream buffers owned by a connection.
func (s *Session) DropConnection(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dropped := s.streams.dropConnection(connID); dropped > 0 {
		logger.Debugf("session %s: discarded %d open strokes for conn %s", s.id, dropped, connID)
	}
}

// Stats summarizes the session for the HTTP API.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		ID:          s.id,
		Operations:  s.log.Len(),
		Strokes:     len(s.log.VisibleStrokes()),
		RedoDepth:   s.log.RedoDepth(),
		OpenStreams: s.streams.open(),
	}
}
