package websocket

import (
	"sync"

	"github.com/bhandras/inkwire/internal/logger"
	"github.com/bhandras/inkwire/pkg/wire"
	"github.com/gorilla/websocket"
)

// Conn is one client connection, bound to exactly one session for its
// lifetime.
type Conn struct {
	id        string
	sessionID string
	color     string

	sock *websocket.Conn
	// writeMu serializes writes; gorilla connections allow one writer.
	writeMu sync.Mutex
	dead    bool
}

// ID returns the server-assigned connection id.
func (c *Conn) ID() string { return c.id }

// SessionID returns the session this connection is scoped to.
func (c *Conn) SessionID() string { return c.sessionID }

// Color returns the cursor color assigned to this connection.
func (c *Conn) Color() string { return c.color }

// Send writes an envelope to the connection. Sends are fire-and-forget: a
// failed write marks the connection dead and the read loop tears it down.
func (c *Conn) Send(env wire.Envelope) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.dead {
		return
	}
	if err := c.sock.WriteJSON(env); err != nil {
		c.dead = true
		logger.Debugf("conn %s: write failed: %v", c.id, err)
	}
}
