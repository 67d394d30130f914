package wire

import "encoding/json"

// Client -> server message types.
const (
	MsgStrokeStart = "stroke-start"
	MsgStrokeMove  = "stroke-move"
	MsgStrokeEnd   = "stroke-end"
	MsgStrokeErase = "stroke-erase"
	MsgUndo        = "undo"
	MsgRedo        = "redo"
	MsgCursor      = "cursor"
)

// Server -> client message types.
const (
	MsgSync         = "sync"
	MsgStreamStart  = "stream-start"
	MsgStreamPoints = "stream-points"
	MsgStreamEnd    = "stream-end"
	MsgOpCommit     = "op-commit"
	MsgOpUndo       = "op-undo"
	MsgOpRedo       = "op-redo"
	MsgCursorMoved  = "cursor-moved"
)

// Envelope is the wrapper for every message in both directions.
type Envelope struct {
	// Type discriminates the payload.
	Type string `json:"type"`
	// Payload is the type-specific body.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps a payload. Marshal errors cannot occur for our own
// payload structs and are folded into an empty payload.
func NewEnvelope(msgType string, payload any) Envelope {
	raw, _ := json.Marshal(payload)
	return Envelope{Type: msgType, Payload: raw}
}

// StrokeStartPayload opens a streaming stroke.
type StrokeStartPayload struct {
	StrokeID string  `json:"strokeId" binding:"required"`
	Color    string  `json:"color"`
	Size     float64 `json:"size"`
	Point    Point   `json:"point"`
}

// StrokeMovePayload appends a batch of points to an open stroke.
type StrokeMovePayload struct {
	StrokeID string  `json:"strokeId" binding:"required"`
	Points   []Point `json:"points"`
}

// StrokeEndPayload completes an open stroke and commits it to history.
type StrokeEndPayload struct {
	StrokeID string `json:"strokeId" binding:"required"`
}

// StrokeErasePayload removes a committed stroke from the canvas.
type StrokeErasePayload struct {
	StrokeID string `json:"strokeId" binding:"required"`
}

// CursorPayload is an ephemeral pointer position; never logged.
type CursorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SyncPayload carries the full ordered history for a newly joined connection.
type SyncPayload struct {
	// ConnID is the receiver's server-assigned connection id.
	ConnID string `json:"connId"`
	// Operations is the authoritative history in seq order.
	Operations []Operation `json:"operations"`
}

// StreamStartPayload relays a remote stroke opening to other connections.
type StreamStartPayload struct {
	// AuthorID is the originating connection id.
	AuthorID string  `json:"authorId"`
	StrokeID string  `json:"strokeId"`
	Color    string  `json:"color"`
	Size     float64 `json:"size"`
	Point    Point   `json:"point"`
}

// StreamPointsPayload relays a remote point batch to other connections.
type StreamPointsPayload struct {
	AuthorID string  `json:"authorId"`
	StrokeID string  `json:"strokeId"`
	Points   []Point `json:"points"`
}

// StreamEndPayload tells other connections to clear their live rendering of
// a remote stroke; the committed operation arrives separately via op-commit.
type StreamEndPayload struct {
	AuthorID string `json:"authorId"`
	StrokeID string `json:"strokeId"`
}

// OperationPayload carries one authoritative operation.
//
// For op-undo the operation is the one removed from history and Seq is its
// original value; receivers remove by ID and must not treat the stale Seq as
// an ordering violation. For op-commit and op-redo Seq is freshly minted.
type OperationPayload struct {
	Operation Operation `json:"operation"`
}

// CursorMovedPayload relays a remote cursor position to other connections.
type CursorMovedPayload struct {
	AuthorID string  `json:"authorId"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}
