// Package client is a Go SDK for the inkwire stream protocol. It maintains a
// replica mirror of the session's authoritative log and surfaces streaming
// and cursor events through optional callbacks.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bhandras/inkwire/pkg/replica"
	"github.com/bhandras/inkwire/pkg/wire"
)

// Handlers are optional callbacks for transient (non-logged) events and for
// log changes. Callbacks run on the client's read goroutine.
type Handlers struct {
	// OnLogChange fires after the mirror changed (sync, commit, undo, redo).
	OnLogChange func()
	// OnStreamStart fires when a remote stroke opens.
	OnStreamStart func(wire.StreamStartPayload)
	// OnStreamPoints fires when a remote stroke streams a point batch.
	OnStreamPoints func(wire.StreamPointsPayload)
	// OnStreamEnd fires when a remote stroke's live rendering should clear.
	OnStreamEnd func(wire.StreamEndPayload)
	// OnCursor fires when a remote cursor moves.
	OnCursor func(wire.CursorMovedPayload)
}

// Client is one connection to a session's stream endpoint.
type Client struct {
	sock    *websocket.Conn
	mirror  *replica.Mirror
	handler Handlers

	writeMu sync.Mutex

	mu     sync.Mutex
	connID string
	synced chan struct{}
	done   chan struct{}
	err    error
}

// Dial connects to a stream endpoint (e.g. "ws://host:port/v1/stream") and
// joins the given session. The returned client is reading; callers should
// wait for WaitSynced before inspecting the mirror.
func Dial(streamURL, sessionID string, handler Handlers) (*Client, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	sock, _, err := websocket.DefaultDialer.Dial(streamURL+"?session="+url.QueryEscape(sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", streamURL, err)
	}
	c := &Client{
		sock:    sock,
		mirror:  replica.New(),
		handler: handler,
		synced:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Mirror returns the client's replica of the authoritative log.
func (c *Client) Mirror() *replica.Mirror { return c.mirror }

// ConnID returns the server-assigned connection id (empty before sync).
func (c *Client) ConnID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connID
}

// WaitSynced blocks until the join snapshot has been applied or the
// connection ended.
func (c *Client) WaitSynced() error {
	select {
	case <-c.synced:
		return nil
	case <-c.done:
		return c.Err()
	}
}

// Done is closed when the read loop ends.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err returns the terminal read error, if any.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.sock.Close()
}

// StartStroke opens a streaming stroke.
func (c *Client) StartStroke(strokeID, color string, size float64, first wire.Point) error {
	return c.send(wire.MsgStrokeStart, wire.StrokeStartPayload{
		StrokeID: strokeID,
		Color:    color,
		Size:     size,
		Point:    first,
	})
}

// MovePoints streams a point batch for an open stroke.
func (c *Client) MovePoints(strokeID string, points []wire.Point) error {
	return c.send(wire.MsgStrokeMove, wire.StrokeMovePayload{StrokeID: strokeID, Points: points})
}

// EndStroke completes an open stroke, committing it to session history.
func (c *Client) EndStroke(strokeID string) error {
	return c.send(wire.MsgStrokeEnd, wire.StrokeEndPayload{StrokeID: strokeID})
}

// EraseStroke removes a committed stroke from the canvas.
func (c *Client) EraseStroke(strokeID string) error {
	return c.send(wire.MsgStrokeErase, wire.StrokeErasePayload{StrokeID: strokeID})
}

// Undo requests removal of the session's most recent operation.
func (c *Client) Undo() error { return c.send(wire.MsgUndo, nil) }

// Redo requests re-application of the most recently undone operation.
func (c *Client) Redo() error { return c.send(wire.MsgRedo, nil) }

// MoveCursor shares an ephemeral pointer position.
func (c *Client) MoveCursor(x, y float64) error {
	return c.send(wire.MsgCursor, wire.CursorPayload{X: x, Y: y})
}

func (c *Client) send(msgType string, payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.sock.WriteJSON(wire.NewEnvelope(msgType, payload))
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var env wire.Envelope
		if err := c.sock.ReadJSON(&env); err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		c.apply(env)
	}
}

func (c *Client) apply(env wire.Envelope) {
	switch env.Type {
	case wire.MsgSync:
		var p wire.SyncPayload
		if json.Unmarshal(env.Payload, &p) != nil {
			return
		}
		c.mirror.ReplaceAll(p.Operations)
		c.mu.Lock()
		c.connID = p.ConnID
		select {
		case <-c.synced:
		default:
			close(c.synced)
		}
		c.mu.Unlock()
		c.logChanged()
	case wire.MsgOpCommit, wire.MsgOpRedo:
		var p wire.OperationPayload
		if json.Unmarshal(env.Payload, &p) != nil {
			return
		}
		c.mirror.Append(p.Operation)
		c.logChanged()
	case wire.MsgOpUndo:
		var p wire.OperationPayload
		if json.Unmarshal(env.Payload, &p) != nil {
			return
		}
		c.mirror.RemoveByID(p.Operation.ID)
		c.logChanged()
	case wire.MsgStreamStart:
		var p wire.StreamStartPayload
		if json.Unmarshal(env.Payload, &p) == nil && c.handler.OnStreamStart != nil {
			c.handler.OnStreamStart(p)
		}
	case wire.MsgStreamPoints:
		var p wire.StreamPointsPayload
		if json.Unmarshal(env.Payload, &p) == nil && c.handler.OnStreamPoints != nil {
			c.handler.OnStreamPoints(p)
		}
	case wire.MsgStreamEnd:
		var p wire.StreamEndPayload
		if json.Unmarshal(env.Payload, &p) == nil && c.handler.OnStreamEnd != nil {
			c.handler.OnStreamEnd(p)
		}
	case wire.MsgCursorMoved:
		var p wire.CursorMovedPayload
		if json.Unmarshal(env.Payload, &p) == nil && c.handler.OnCursor != nil {
			c.handler.OnCursor(p)
		}
	}
}

func (c *Client) logChanged() {
	if c.handler.OnLogChange != nil {
		c.handler.OnLogChange()
	}
}
