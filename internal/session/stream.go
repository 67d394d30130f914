package session

import "github.com/bhandras/inkwire/pkg/wire"

// streamKey identifies one in-progress stroke. The key is structural rather
// than a concatenated string so neither id can collide with a separator.
type streamKey struct {
	connID   string
	strokeID string
}

// streamBuffer accumulates points for one in-progress stroke between its
// start and end events. Entries never touch the authoritative log; a buffer
// abandoned by a disconnect is discarded, not committed.
type streamBuffer struct {
	strokeID string
	color    string
	size     float64
	points   []wire.Point
}

// streamSet holds every open stroke buffer for one session. Not safe for
// concurrent use; Session serializes access with its per-session lock.
type streamSet struct {
	buffers map[streamKey]*streamBuffer
}

func newStreamSet() *streamSet {
	return &streamSet{buffers: make(map[streamKey]*streamBuffer)}
}

// start opens a buffer seeded with the stroke's first point. A duplicate
// start for the same key resets the buffer.
func (s *streamSet) start(connID, strokeID, color string, size float64, first wire.Point) {
	s.buffers[streamKey{connID, strokeID}] = &streamBuffer{
		strokeID: strokeID,
		color:    color,
		size:     size,
		points:   []wire.Point{first},
	}
}

// appendPoints adds a point batch to an open buffer. A batch for an unknown
// key is dropped and reported via the return value; moves can legitimately
// arrive after the buffer was discarded.
func (s *streamSet) appendPoints(connID, strokeID string, points []wire.Point) bool {
	buf, ok := s.buffers[streamKey{connID, strokeID}]
	if !ok {
		return false
	}
	buf.points = append(buf.points, points...)
	return true
}

// end consumes an open buffer and returns the completed immutable stroke.
// An end for an unknown key returns false.
func (s *streamSet) end(connID, strokeID string) (wire.Stroke, bool) {
	key := streamKey{connID, strokeID}
	buf, ok := s.buffers[key]
	if !ok {
		return wire.Stroke{}, false
	}
	delete(s.buffers, key)
	points := make([]wire.Point, len(buf.points))
	copy(points, buf.points)
	return wire.Stroke{
		ID:     buf.strokeID,
		Color:  buf.color,
		Size:   buf.size,
		Points: points,
	}, true
}

// dropConnection discards every buffer owned by the connection. Partial
// strokes from a lost connection are simply gone.
func (s *streamSet) dropConnection(connID string) int {
	dropped := 0
	for key := range s.buffers {
		if key.connID == connID {
			delete(s.buffers, key)
			dropped++
		}
	}
	return dropped
}

// open returns the number of open buffers.
func (s *streamSet) open() int { return len(s.buffers) }
