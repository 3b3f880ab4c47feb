package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSystemRouter(pingDB func() error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSystemHandler(pingDB)
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ping", h.Ping)
	return router
}

func TestSystemHandler_Health(t *testing.T) {
	router := setupSystemRouter(func() error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.Equal(t, "portal-backend", resp.Name)
	assert.NotEmpty(t, resp.GoVersion)
}

func TestSystemHandler_Health_DatabaseDown(t *testing.T) {
	router := setupSystemRouter(func() error { return errors.New("connection refused") })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	envelope := decodeEnvelope(t, w)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "error", resp.Database)
}

func TestSystemHandler_Ping(t *testing.T) {
	router := setupSystemRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	var resp PingResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &resp))
	assert.Equal(t, "pong", resp.Message)
	assert.NotEmpty(t, resp.Timestamp)
}
