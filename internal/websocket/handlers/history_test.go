package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhandras/inkwire/pkg/wire"
)

func TestUndoRedo_EmptyHistoryEmitsNothing(t *testing.T) {
	sess := newTestSession(t)
	conn := NewConnContext("c1", "r1", "#e6194b")

	require.Empty(t, Undo(conn, sess).Emits())
	require.Empty(t, Redo(conn, sess).Emits())
}

func TestUndoRedo_BroadcastsToAll(t *testing.T) {
	sess := newTestSession(t)
	conn := NewConnContext("c1", "r1", "#e6194b")

	StrokeStart(conn, sess, wire.StrokeStartPayload{StrokeID: "s1", Color: "#000", Size: 5})
	StrokeEnd(conn, sess, wire.StrokeEndPayload{StrokeID: "s1"})

	undoRes := Undo(conn, sess)
	require.Len(t, undoRes.Emits(), 1)
	undoEmit := undoRes.Emits()[0]
	require.False(t, undoEmit.SkipSelf())
	require.Equal(t, wire.MsgOpUndo, undoEmit.Envelope().Type)
	undone := decodePayload[wire.OperationPayload](t, undoEmit.Envelope()).Operation
	require.Equal(t, "s1", undone.ID)
	require.Equal(t, int64(1), undone.Seq, "undo carries the original seq")

	redoRes := Redo(conn, sess)
	require.Len(t, redoRes.Emits(), 1)
	redoEmit := redoRes.Emits()[0]
	require.Equal(t, wire.MsgOpRedo, redoEmit.Envelope().Type)
	redone := decodePayload[wire.OperationPayload](t, redoEmit.Envelope()).Operation
	require.Equal(t, "s1", redone.ID)
	require.Equal(t, int64(2), redone.Seq, "redo is a brand-new event")
}

func TestCursorMove_RelaysWithAssignedColor(t *testing.T) {
	conn := NewConnContext("c1", "r1", "#3cb44b")

	res := CursorMove(conn, wire.CursorPayload{X: 4, Y: 8})
	require.Len(t, res.Emits(), 1)
	emit := res.Emits()[0]
	require.True(t, emit.SkipSelf())
	require.Equal(t, wire.MsgCursorMoved, emit.Envelope().Type)

	p := decodePayload[wire.CursorMovedPayload](t, emit.Envelope())
	require.Equal(t, "c1", p.AuthorID)
	require.Equal(t, "#3cb44b", p.Color)
	require.Equal(t, 4.0, p.X)
	require.Equal(t, 8.0, p.Y)
}
