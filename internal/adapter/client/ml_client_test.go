package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMLClient_ClassifyBatch(t *testing.T) {
	t.Run("successful batch classification", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/modelo_binario/classify/batch", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req ClassifyBatchRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, []string{"tc de cranio", "dipirona"}, req.Texts)
			assert.Equal(t, "config", req.Tokenizer)
			assert.Equal(t, 128, req.MaxLength)
			assert.True(t, req.Truncation)
			assert.Equal(t, "max_length", req.Padding)
			assert.Equal(t, "req-123", req.RequestID)

			resp := ClassifyBatchResponse{
				Success: true,
				Results: []ClassificationResult{
					{Label: "LABEL_1", Score: 0.98},
					{Label: "LABEL_0", Score: 0.91},
				},
				ModelVersion: "binario-v1",
				RequestID:    "req-123",
			}
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 0, 5*time.Second)
		result, err := client.ClassifyBatch(context.Background(), "modelo_binario", []string{"tc de cranio", "dipirona"}, "req-123")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Len(t, result.Results, 2)
		assert.Equal(t, "LABEL_1", result.Results[0].Label)
		assert.Equal(t, "binario-v1", result.ModelVersion)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte("model not found"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 128, 5*time.Second)
		_, err := client.ClassifyBatch(context.Background(), "modelo_binario", []string{"x"}, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "model not found")
	})

	t.Run("unsuccessful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			err := json.NewEncoder(w).Encode(ClassifyBatchResponse{Success: false})
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 128, 5*time.Second)
		_, err := client.ClassifyBatch(context.Background(), "modelo_binario", []string{"x"}, "")

		assert.Error(t, err)
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewMLClient("http://localhost:99999", "config", 128, 1*time.Second)
		_, err := client.ClassifyBatch(context.Background(), "modelo_binario", []string{"x"}, "")

		assert.Error(t, err)
	})
}

func TestMLClient_Health(t *testing.T) {
	t.Run("healthy service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			assert.Equal(t, "GET", r.Method)

			resp := HealthResponse{
				Status:       "healthy",
				LoadedModels: []string{"modelo_binario", "modelo_multiclasse"},
				Tokenizer:    "config",
			}
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 128, 5*time.Second)
		result, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", result.Status)
		assert.True(t, result.HasModel("modelo_multiclasse"))
		assert.False(t, result.HasModel("other"))
	})
}

func TestMLClient_EnsureModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		err := json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", LoadedModels: []string{"modelo_binario"}})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := NewMLClient(server.URL, "config", 128, 5*time.Second)

	assert.NoError(t, client.EnsureModels(context.Background(), "modelo_binario"))

	err := client.EnsureModels(context.Background(), "modelo_binario", "modelo_multiclasse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "modelo_multiclasse")
}

func TestMLClient_Ready(t *testing.T) {
	t.Run("ready service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ready", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 128, 5*time.Second)
		err := client.Ready(context.Background())

		assert.NoError(t, err)
	})

	t.Run("not ready service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewMLClient(server.URL, "config", 128, 5*time.Second)
		err := client.Ready(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not ready")
	})
}
