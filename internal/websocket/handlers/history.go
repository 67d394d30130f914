package handlers

import (
	"github.com/bhandras/inkwire/internal/session"
	"github.com/bhandras/inkwire/pkg/wire"
)

// Undo pops the most recent operation from the session's history and tells
// every connection to remove it by id. The broadcast carries the operation's
// original seq; receivers key the removal on the id, not on seq comparison.
// An empty history emits nothing.
func Undo(conn ConnContext, sess *session.Session) EventResult {
	op, ok := sess.Undo()
	if !ok {
		return EventResult{}
	}
	return NewEventResult(
		newBroadcast(wire.NewEnvelope(wire.MsgOpUndo, wire.OperationPayload{Operation: op})),
	)
}

// Redo re-appends the most recently undone operation under a fresh seq and
// broadcasts it as a brand-new event. An empty redo stack emits nothing.
func Redo(conn ConnContext, sess *session.Session) EventResult {
	op, ok := sess.Redo()
	if !ok {
		return EventResult{}
	}
	return NewEventResult(
		newBroadcast(wire.NewEnvelope(wire.MsgOpRedo, wire.OperationPayload{Operation: op})),
	)
}
