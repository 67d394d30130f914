package session

import (
	"github.com/google/uuid"

	"github.com/bhandras/inkwire/pkg/wire"
)

// Draft is a not-yet-sequenced history mutation. It is a distinct type from
// wire.Operation so that anything stored in the log is sequenced by
// construction.
type Draft struct {
	Kind wire.OpKind
	// ID is the operation id; for add drafts this is the stroke id.
	ID string
	// Stroke is the payload for add drafts.
	Stroke *wire.Stroke
	// StrokeID is the removal target for remove drafts.
	StrokeID string
}

// AddStrokeDraft builds an add draft from a completed stroke, reusing the
// stroke id as the operation id (both are client-minted UUIDs).
func AddStrokeDraft(stroke wire.Stroke) Draft {
	return Draft{Kind: wire.OpAddStroke, ID: stroke.ID, Stroke: &stroke}
}

// RemoveStrokeDraft builds a remove draft targeting a committed stroke. The
// draft gets its own operation id: undo broadcasts tell receivers to remove
// an operation by id, so a remove op must never share its id with the add op
// it targets.
func RemoveStrokeDraft(strokeID string) Draft {
	return Draft{Kind: wire.OpRemoveStroke, ID: uuid.NewString(), StrokeID: strokeID}
}

// Log is the authoritative operation history for one session: the single
// place sequence numbers are minted, and the undo/redo source of truth.
//
// Log is not safe for concurrent use; Session serializes access with its
// per-session lock.
type Log struct {
	ops       []wire.Operation
	redoStack []wire.Operation
	nextSeq   int64
}

// NewLog creates an empty log. Sequence numbers start at 1.
func NewLog() *Log {
	return &Log{nextSeq: 1}
}

// Append sequences a draft and appends it to history. Any pending redo
// operations are invalidated: a fresh action branches the timeline.
func (l *Log) Append(d Draft) wire.Operation {
	op := wire.Operation{
		Kind:     d.Kind,
		ID:       d.ID,
		Seq:      l.nextSeq,
		Stroke:   d.Stroke,
		StrokeID: d.StrokeID,
	}
	l.nextSeq++
	l.ops = append(l.ops, op)
	l.redoStack = nil
	return op
}

// Undo removes the most recent operation from history and parks it on the
// redo stack. The returned operation keeps its original seq so receivers can
// remove it by id; it is no longer part of authoritative history. Returns
// false when there is nothing to undo.
func (l *Log) Undo() (wire.Operation, bool) {
	if len(l.ops) == 0 {
		return wire.Operation{}, false
	}
	op := l.ops[len(l.ops)-1]
	l.ops = l.ops[:len(l.ops)-1]
	l.redoStack = append(l.redoStack, op)
	return op, true
}

// Redo re-appends the most recently undone operation with a fresh seq.
// Clients rely on seq always increasing, so a redo is a brand-new event
// rather than a reinsertion of the old one. Returns false when the redo
// stack is empty.
func (l *Log) Redo() (wire.Operation, bool) {
	if len(l.redoStack) == 0 {
		return wire.Operation{}, false
	}
	op := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	op.Seq = l.nextSeq
	l.nextSeq++
	l.ops = append(l.ops, op)
	return op, true
}

// Snapshot returns a copy of the full history in seq order.
func (l *Log) Snapshot() []wire.Operation {
	out := make([]wire.Operation, len(l.ops))
	copy(out, l.ops)
	return out
}

// Len returns the number of operations in history.
func (l *Log) Len() int { return len(l.ops) }

// RedoDepth returns the number of undone operations available for redo.
func (l *Log) RedoDepth() int { return len(l.redoStack) }

// VisibleStrokes folds the history into the current canvas contents.
// Replicas holding an identical operation sequence derive identical stroke
// sets. Removing an absent stroke is a no-op, not an error (double removal
// after undo is legal).
func (l *Log) VisibleStrokes() []wire.Stroke {
	return FoldVisible(l.ops)
}

// FoldVisible is the left-to-right reduction of an operation sequence into
// the visible stroke set, ordered by the seq that made each stroke visible.
func FoldVisible(ops []wire.Operation) []wire.Stroke {
	byID := make(map[string]wire.Stroke)
	order := make([]string, 0, len(ops))
	for _, op := range ops {
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
