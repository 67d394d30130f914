package handlers

// ConnContext identifies the connection a message arrived on.
type ConnContext struct {
	connID    string
	sessionID string
	color     string
}

// NewConnContext builds a connection context for handler calls.
func NewConnContext(connID, sessionID, color string) ConnContext {
	return ConnContext{connID: connID, sessionID: sessionID, color: color}
}

// ConnID returns the server-assigned connection id.
func (c ConnContext) ConnID() string { return c.connID }

// SessionID returns the session the connection is scoped to.
func (c ConnContext) SessionID() string { return c.sessionID }

// Color returns the cursor color assigned to the connection.
func (c ConnContext) Color() string { return c.color }
