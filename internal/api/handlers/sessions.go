package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bhandras/inkwire/internal/session"
)

// ConnectionCounter reports live connection counts per session.
type ConnectionCounter interface {
	ConnectionCount(sessionID string) int
}

// SessionHandler serves the session endpoints used by client bootstrap.
type SessionHandler struct {
	registry *session.Registry
	conns    ConnectionCounter
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(registry *session.Registry, conns ConnectionCounter) *SessionHandler {
	return &SessionHandler{registry: registry, conns: conns}
}

// CreateSessionResponse is the body returned by CreateSession.
type CreateSessionResponse struct {
	ID string `json:"id"`
}

// CreateSession handles POST /v1/sessions. It only mints an id; the session
// itself is created lazily on the first stream join.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusOK, CreateSessionResponse{ID: uuid.NewString()})
}

// SessionStatsResponse is the body returned by GetSession.
type SessionStatsResponse struct {
	session.Stats
	Connections int `json:"connections"`
}

// GetSession handles GET /v1/sessions/:id: a point-in-time summary of a live
// session. Sessions that were never joined return 404.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.registry.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, SessionStatsResponse{
		Stats:       sess.Stats(),
		Connections: h.conns.ConnectionCount(id),
	})
}
