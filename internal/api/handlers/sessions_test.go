package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bhandras/inkwire/internal/session"
)

type fakeConnCounter map[string]int

func (f fakeConnCounter) ConnectionCount(sessionID string) int { return f[sessionID] }

func newTestRouter(registry *session.Registry, conns ConnectionCounter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSessionHandler(registry, conns)
	router.POST("/v1/sessions", h.CreateSession)
	router.GET("/v1/sessions/:id", h.GetSession)
	return router
}

func TestCreateSession_MintsID(t *testing.T) {
	registry := session.NewRegistry()
	router := newTestRouter(registry, fakeConnCounter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	// The id is only minted here; the session is created lazily on join.
	require.Zero(t, registry.Count())
}

func TestGetSession_UnknownReturns404(t *testing.T) {
	router := newTestRouter(session.NewRegistry(), fakeConnCounter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/nope", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSession_ReturnsStats(t *testing.T) {
	registry := session.NewRegistry()
	registry.GetOrCreate("r1")
	router := newTestRouter(registry, fakeConnCounter{"r1": 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/r1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SessionStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "r1", resp.ID)
	require.Equal(t, 3, resp.Connections)
	require.Zero(t, resp.Operations)
}
