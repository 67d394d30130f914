package wire

// OpKind discriminates the operation union.
type OpKind string

const (
	// OpAddStroke adds a completed stroke to the canvas.
	OpAddStroke OpKind = "add"
	// OpRemoveStroke removes a stroke from the canvas by id.
	OpRemoveStroke OpKind = "remove"
)

// Point is a single immutable input sample.
type Point struct {
	// X is the horizontal canvas coordinate.
	X float64 `json:"x"`
	// Y is the vertical canvas coordinate.
	Y float64 `json:"y"`
	// Pressure is the pen pressure in [0,1]; 0.5 when the device reports none.
	Pressure float64 `json:"pressure"`
	// Timestamp is the client capture time in ms since epoch.
	Timestamp int64 `json:"timestamp"`
}

// Stroke is a completed freehand path. Immutable once constructed.
type Stroke struct {
	// ID is the client-minted stroke id (unique per session).
	ID string `json:"id"`
	// Color is the stroke color (CSS color string).
	Color string `json:"color"`
	// Size is the brush size; always positive.
	Size float64 `json:"size"`
	// Points is the ordered point sequence.
	Points []Point `json:"points"`
}

// Operation is the authoritative, sequenced form of a history mutation.
//
// Seq is minted exclusively by the server-side log; clients never fabricate
// or influence it. It is strictly increasing within a session, including
// across redos (a redone operation carries a fresh Seq).
type Operation struct {
	// Kind is the operation variant.
	Kind OpKind `json:"kind"`
	// ID is the operation id (the stroke id for add operations).
	ID string `json:"id"`
	// Seq is the server-assigned session-scoped sequence number.
	Seq int64 `json:"seq"`
	// Stroke is the stroke payload; set for add operations only.
	Stroke *Stroke `json:"stroke,omitempty"`
	// StrokeID is the removal target; set for remove operations only.
	StrokeID string `json:"strokeId,omitempty"`
}
