package handlers

import "github.com/bhandras/inkwire/pkg/wire"

// CursorMove relays an ephemeral pointer position to the other connections
// in the session. Cursor positions never touch the log.
func CursorMove(conn ConnContext, req wire.CursorPayload) EventResult {
	return NewEventResult(
		newBroadcastToOthers(wire.NewEnvelope(wire.MsgCursorMoved, wire.CursorMovedPayload{
			AuthorID: conn.ConnID(),
			Color:    conn.Color(),
			X:        req.X,
			Y:        req.Y,
		})),
	)
}
