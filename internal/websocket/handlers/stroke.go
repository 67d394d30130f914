package handlers

import (
	"github.com/bhandras/inkwire/internal/session"
	"github.com/bhandras/inkwire/pkg/wire"
)

// defaultPressure is substituted when the input device reported no pressure.
const defaultPressure = 0.5

func normalizePoint(p wire.Point) wire.Point {
	if p.Pressure <= 0 {
		p.Pressure = defaultPressure
	} else if p.Pressure > 1 {
		p.Pressure = 1
	}
	return p
}

func normalizePoints(pts []wire.Point) []wire.Point {
	out := make([]wire.Point, len(pts))
	for i, p := range pts {
		out[i] = normalizePoint(p)
	}
	return out
}

// StrokeStart opens a stream buffer for an in-progress stroke and relays the
// start to the other connections in the session. The stroke does not touch
// the authoritative log until it ends.
func StrokeStart(conn ConnContext, sess *session.Session, req wire.StrokeStartPayload) EventResult {
	if req.StrokeID == "" || req.Size <= 0 {
		return EventResult{}
	}
	first := normalizePoint(req.Point)
	sess.StartStroke(conn.ConnID(), req.StrokeID, req.Color, req.Size, first)
	return NewEventResult(
		newBroadcastToOthers(wire.NewEnvelope(wire.MsgStreamStart, wire.StreamStartPayload{
			AuthorID: conn.ConnID(),
			StrokeID: req.StrokeID,
			Color:    req.Color,
			Size:     req.Size,
			Point:    first,
		})),
	)
}

// StrokeMove appends a point batch to an open stroke and relays it to the
// other connections. A batch for an unknown stroke is dropped without a
// relay; the buffer may already have been discarded.
func StrokeMove(conn ConnContext, sess *session.Session, req wire.StrokeMovePayload) EventResult {
	if req.StrokeID == "" || len(req.Points) == 0 {
		return EventResult{}
	}
	points := normalizePoints(req.Points)
	if !sess.AppendStrokePoints(conn.ConnID(), req.StrokeID, points) {
		return EventResult{}
	}
	return NewEventResult(
		newBroadcastToOthers(wire.NewEnvelope(wire.MsgStreamPoints, wire.StreamPointsPayload{
			AuthorID: conn.ConnID(),
			StrokeID: req.StrokeID,
			Points:   points,
		})),
	)
}

// StrokeEnd commits an open stroke to the authoritative log. The sequenced
// operation goes to every connection, the originator included, so its
// optimistic live stroke can be reconciled with history; the stream-end goes
// to the others so they clear their live rendering.
func StrokeEnd(conn ConnContext, sess *session.Session, req wire.StrokeEndPayload) EventResult {
	if req.StrokeID == "" {
		return EventResult{}
	}
	op, ok := sess.EndStroke(conn.ConnID(), req.StrokeID)
	if !ok {
		return EventResult{}
	}
	return NewEventResult(
		newBroadcast(wire.NewEnvelope(wire.MsgOpCommit, wire.OperationPayload{Operation: op})),
		newBroadcastToOthers(wire.NewEnvelope(wire.MsgStreamEnd, wire.StreamEndPayload{
			AuthorID: conn.ConnID(),
			StrokeID: req.StrokeID,
		})),
	)
}

// StrokeErase commits a remove operation for a stroke. Removal of an absent
// stroke folds to a no-op on every replica, so no existence check is made.
func StrokeErase(conn ConnContext, sess *session.Session, req wire.StrokeErasePayload) EventResult {
	if req.StrokeID == "" {
		return EventResult{}
	}
	op := sess.EraseStroke(req.StrokeID)
	return NewEventResult(
		newBroadcast(wire.NewEnvelope(wire.MsgOpCommit, wire.OperationPayload{Operation: op})),
	)
}
