package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bhandras/inkwire/internal/logger"
	"github.com/bhandras/inkwire/internal/session"
	"github.com/bhandras/inkwire/internal/websocket/handlers"
	"github.com/bhandras/inkwire/pkg/wire"
)

// originChecker applies the configured CORS allow-list to the websocket
// handshake. Requests without an Origin header (non-browser clients) are
// always allowed.
func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[strings.ToLower(o)] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

// cursorPalette provides the colors assigned to connections round-robin.
var cursorPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c",
}

// Server terminates the stream endpoint: it upgrades connections, scopes
// each one to a session, serves the join snapshot, and pumps inbound
// messages through the handlers.
type Server struct {
	registry *session.Registry
	hub      *Hub
	upgrader websocket.Upgrader

	joined atomic.Uint64
}

// NewServer creates a websocket server over a session registry. The allowed
// origins are the same list the HTTP CORS layer enforces.
func NewServer(registry *session.Registry, allowedOrigins []string) *Server {
	return &Server{
		registry: registry,
		hub:      NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Hub exposes the connection hub (used by the HTTP stats endpoint).
func (s *Server) Hub() *Hub { return s.hub }

// HandleStream handles GET /v1/stream?session=<id>. A connection without a
// session id is refused before the upgrade; no partial state is created.
func (s *Server) HandleStream(c *gin.Context) {
	sessionID := c.Query("session")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session query parameter is required"})
		return
	}

	sock, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	conn := &Conn{
		id:        uuid.NewString(),
		sessionID: sessionID,
		color:     cursorPalette[s.joined.Add(1)%uint64(len(cursorPalette))],
		sock:      sock,
	}
	sess := s.registry.GetOrCreate(sessionID)

	// Register and serve the snapshot inside the session's processing
	// boundary so the snapshot is consistent with every broadcast the
	// connection observes afterwards.
	s.hub.Run(sessionID, func() {
		s.hub.Add(conn)
		conn.Send(wire.NewEnvelope(wire.MsgSync, wire.SyncPayload{
			ConnID:     conn.id,
			Operations: sess.SnapshotOps(),
		}))
	})
	logger.Infof("conn %s joined session %s", conn.id, sessionID)

	s.readLoop(conn, sess)

	// Per-connection cleanup: drop open stream buffers, then unregister.
	// Partial strokes are lost, never committed.
	s.hub.Run(sessionID, func() {
		sess.DropConnection(conn.id)
		s.hub.Remove(conn)
	})
	_ = sock.Close()
	logger.Infof("conn %s left session %s", conn.id, sessionID)
}

func (s *Server) readLoop(conn *Conn, sess *session.Session) {
	for {
		var env wire.Envelope
		if err := conn.sock.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("conn %s: read failed: %v", conn.id, err)
			}
			return
		}
		s.hub.Run(conn.sessionID, func() {
			s.dispatch(conn, sess, env)
		})
	}
}

// dispatch decodes one inbound envelope, runs its handler, and performs the
// requested emissions. Malformed payloads and unknown types are rejected at
// this boundary and ignored.
func (s *Server) dispatch(conn *Conn, sess *session.Session, env wire.Envelope) {
	ctx := handlers.NewConnContext(conn.id, conn.sessionID, conn.color)

	var res handlers.EventResult
	switch env.Type {
	case wire.MsgStrokeStart:
		var req wire.StrokeStartPayload
		if !decode(conn, env, &req) {
			return
		}
		res = handlers.StrokeStart(ctx, sess, req)
	case wire.MsgStrokeMove:
		var req wire.StrokeMovePayload
		if !decode(conn, env, &req) {
			return
		}
		res = handlers.StrokeMove(ctx, sess, req)
	case wire.MsgStrokeEnd:
		var req wire.StrokeEndPayload
		if !decode(conn, env, &req) {
			return
		}
		res = handlers.StrokeEnd(ctx, sess, req)
	case wire.MsgStrokeErase:
		var req wire.StrokeErasePayload
		if !decode(conn, env, &req) {
			return
		}
		res = handlers.StrokeErase(ctx, sess, req)
	case wire.MsgUndo:
		res = handlers.Undo(ctx, sess)
	case wire.MsgRedo:
		res = handlers.Redo(ctx, sess)
	case wire.MsgCursor:
		var req wire.CursorPayload
		if !decode(conn, env, &req) {
			return
		}
		res = handlers.CursorMove(ctx, req)
	default:
		logger.Debugf("conn %s: unknown message type %q", conn.id, env.Type)
		return
	}

	for _, emit := range res.Emits() {
		skip := ""
		if emit.SkipSelf() {
			skip = conn.id
		}
		s.hub.Emit(conn.sessionID, emit.Envelope(), skip)
	}
}

func decode(conn *Conn, env wire.Envelope, dst any) bool {
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		logger.Debugf("conn %s: malformed %s payload: %v", conn.id, env.Type, err)
		return false
	}
	return true
}
