package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModelService struct {
	err error
}

func (s stubModelService) Ready(context.Context) error {
	return s.err
}

func serveHealth(h *HealthHandler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	req, _ := http.NewRequest("GET", path, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler_Health(t *testing.T) {
	t.Run("healthy when no dependencies", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, nil, nil), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "not configured", status.Components["database"])
		assert.Equal(t, "not configured", status.Components["redis"])
		assert.Equal(t, "not configured", status.Components["model_service"])
	})

	t.Run("unhealthy when model service is down", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, nil, stubModelService{err: errors.New("connection refused")}), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "unhealthy", status.Status)
		assert.Contains(t, status.Components["model_service"], "connection refused")
	})

	t.Run("model service ok", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, nil, stubModelService{}), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"model_service":"ok"`)
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready when no database", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, nil, nil), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("not ready until models are loaded", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, nil, stubModelService{err: errors.New("loading")}), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "model service not ready")
	})
}
