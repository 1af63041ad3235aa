package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/entity"
)

type stubPredictor struct{}

func (stubPredictor) Predict(_ context.Context, texts []string) ([]string, error) {
	labels := make([]string, len(texts))
	for i := range texts {
		labels[i] = entity.NotImageExam
	}
	return labels, nil
}

func (stubPredictor) PredictDetailed(_ context.Context, texts []string) ([]entity.Prediction, error) {
	return make([]entity.Prediction, len(texts)), nil
}

func TestSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := Setup(Deps{Predictor: stubPredictor{}, Logger: zap.NewNop()})

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/classify",
		"POST /api/v1/rules/label",
		"POST /api/v1/runs",
		"POST /api/v1/runs/csv",
		"GET /api/v1/runs",
		"GET /api/v1/runs/:id",
		"GET /api/v1/runs/:id/records",
		"GET /api/v1/runs/:id/notifications",
	} {
		assert.True(t, routes[want], want)
	}

	t.Run("classify without cache", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(`{"texts":["dipirona"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), entity.NotImageExam)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
