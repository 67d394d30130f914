package replica

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhandras/inkwire/internal/session"
	"github.com/bhandras/inkwire/pkg/wire"
)

func addOp(id string, seq int64) wire.Operation {
	return wire.Operation{
		Kind: wire.OpAddStroke,
		ID:   id,
		Seq:  seq,
		Stroke: &wire.Stroke{
			ID:     id,
			Color:  "#000",
			Size:   5,
			Points: []wire.Point{{X: 0, Y: 0, Pressure: 0.5}},
		},
	}
}

func removeOp(id string, seq int64) wire.Operation {
	return wire.Operation{Kind: wire.OpRemoveStroke, ID: id, Seq: seq, StrokeID: id}
}

func TestMirror_ReplaceAllCopiesInput(t *testing.T) {
	m := New()
	ops := []wire.Operation{addOp("s1", 1)}
	m.ReplaceAll(ops)

	ops[0].ID = "tampered"
	require.Equal(t, "s1", m.Snapshot()[0].ID)
}

func TestMirror_AppendAndRemoveByID(t *testing.T) {
	m := New()
	m.ReplaceAll([]wire.Operation{addOp("s1", 1), addOp("s2", 2)})
	m.Append(addOp("s3", 3))
	require.Equal(t, 3, m.Len())

	// Undo broadcasts carry the removed op's original seq; removal is keyed
	// on id regardless.
	m.RemoveByID("s2")
	snap := m.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, "s1", snap[0].ID)
	require.Equal(t, "s3", snap[1].ID)

	m.RemoveByID("unknown")
	require.Equal(t, 2, m.Len())
}

func TestMirror_FoldMatchesServerFold(t *testing.T) {
	// The mirror's fold is a deliberate re-implementation of the server-side
	// reduction; both must derive identical stroke sets for the same log.
	ops := []wire.Operation{
		addOp("s1", 1),
		addOp("s2", 2),
		removeOp("s1", 3),
		addOp("s3", 4),
		removeOp("missing", 5),
	}

	m := New()
	m.ReplaceAll(ops)

	require.Equal(t, session.FoldVisible(ops), m.VisibleStrokes())
}

func TestMirror_SyncUndoRedoConvergence(t *testing.T) {
	// A replica that joins via sync and then applies an undo and a redo
	// broadcast in order ends up identical to the authoritative history.
	log := session.NewLog()
	op1 := log.Append(session.AddStrokeDraft(wire.Stroke{ID: "s1", Color: "#000", Size: 5}))

	m := New()
	m.ReplaceAll([]wire.Operation{op1})

	undone, ok := log.Undo()
	require.True(t, ok)
	m.RemoveByID(undone.ID)
	require.Empty(t, m.Snapshot())

	redone, ok := log.Redo()
	require.True(t, ok)
	m.Append(redone)

	require.Equal(t, log.Snapshot(), m.Snapshot())
	require.Equal(t, log.VisibleStrokes(), m.VisibleStrokes())
}

func TestMirror_EraseUndoRedoConvergence(t *testing.T) {
	// An erase is its own operation: undoing it must remove only the erase
	// from a replica, never the add operation it targets.
	log := session.NewLog()
	added := log.Append(session.AddStrokeDraft(wire.Stroke{ID: "s1", Color: "#000", Size: 5}))
	erased := log.Append(session.RemoveStrokeDraft("s1"))

	m := New()
	m.ReplaceAll([]wire.Operation{added, erased})
	require.Empty(t, m.VisibleStrokes())

	undone, ok := log.Undo()
	require.True(t, ok)
	require.Equal(t, erased.ID, undone.ID)
	m.RemoveByID(undone.ID)

	require.Equal(t, log.Snapshot(), m.Snapshot(), "mirror diverged from authoritative log")
	require.Len(t, m.VisibleStrokes(), 1)

	redone, ok := log.Redo()
	require.True(t, ok)
	m.Append(redone)

	require.Equal(t, log.Snapshot(), m.Snapshot())
	require.Empty(t, m.VisibleStrokes())
}
