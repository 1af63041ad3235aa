package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Tokenizer defaults shared by both models
const (
	DefaultMaxLength = 128
	DefaultBatchSize = 32
	paddingMaxLength = "max_length"
)

// ClassifyBatchRequest represents a batch request to the model service
type ClassifyBatchRequest struct {
	Texts      []string `json:"texts"`
	Tokenizer  string   `json:"tokenizer,omitempty"`
	MaxLength  int      `json:"max_length"`
	Truncation bool     `json:"truncation"`
	Padding    string   `json:"padding"`
	RequestID  string   `json:"request_id,omitempty"`
}

// ClassificationResult represents a single text-classification output
type ClassificationResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyBatchResponse represents the batch response from the model service
type ClassifyBatchResponse struct {
	Success      bool                   `json:"success"`
	Results      []ClassificationResult `json:"results"`
	ModelVersion string                 `json:"model_version"`
	RequestID    string                 `json:"request_id,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string   `json:"status"`
	LoadedModels []string `json:"loaded_models"`
	Tokenizer    string   `json:"tokenizer"`
}

// HasModel reports whether the service has loaded the given model
func (h *HealthResponse) HasModel(model string) bool {
	for _, m := range h.LoadedModels {
		if m == model {
			return true
		}
	}
	return false
}

// MLClient is an HTTP client for the model serving service
type MLClient struct {
	baseURL    string
	tokenizer  string
	maxLength  int
	httpClient *http.Client
}

// NewMLClient creates a new model service client
func NewMLClient(baseURL, tokenizer string, maxLength int, timeout time.Duration) *MLClient {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &MLClient{
		baseURL:   baseURL,
		tokenizer: tokenizer,
		maxLength: maxLength,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ClassifyBatch sends texts to the given model for classification
func (c *MLClient) ClassifyBatch(ctx context.Context, model string, texts []string, requestID string) (*ClassifyBatchResponse, error) {
	reqBody := ClassifyBatchRequest{
		Texts:      texts,
		Tokenizer:  c.tokenizer,
		MaxLength:  c.maxLength,
		Truncation: true,
		Padding:    paddingMaxLength,
		RequestID:  requestID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/models/" + url.PathEscape(model) + "/classify/batch"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ClassifyBatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("model service reported failure for model %s", model)
	}

	return &result, nil
}

// Health checks the model service health
func (c *MLClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Ready checks if the model service is ready
func (c *MLClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model service not ready: status %d", resp.StatusCode)
	}

	return nil
}

// EnsureModels fails unless every model id is loaded by the service
func (c *MLClient) EnsureModels(ctx context.Context, models ...string) error {
	health, err := c.Health(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if !health.HasModel(m) {
			return fmt.Errorf("model %s is not loaded by the model service", m)
		}
	}
	return nil
}
