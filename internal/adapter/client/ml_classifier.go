package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/service"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/metrics"
)

// ErrMalformedResponse is returned when the model service answers with
// labels or result counts that cannot be mapped back to the request
var ErrMalformedResponse = errors.New("malformed model service response")

const labelPrefix = "LABEL_"

// MLClassifier adapts one model of MLClient to the Classifier interface
type MLClassifier struct {
	client    *MLClient
	model     string
	batchSize int
}

// NewMLClassifier creates a new MLClassifier for the given model id
func NewMLClassifier(client *MLClient, model string, batchSize int) service.Classifier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &MLClassifier{
		client:    client,
		model:     model,
		batchSize: batchSize,
	}
}

// ClassifyBatch classifies texts in chunks of the configured batch size
func (c *MLClassifier) ClassifyBatch(ctx context.Context, texts []string, requestID string) ([]service.ClassificationResult, error) {
	results := make([]service.ClassificationResult, 0, len(texts))

	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))
		chunk := texts[start:end]

		began := time.Now()
		resp, err := c.client.ClassifyBatch(ctx, c.model, chunk, requestID)
		metrics.ClassifierLatency.WithLabelValues(c.model).Observe(time.Since(began).Seconds())
		if err != nil {
			metrics.ClassifierCalls.WithLabelValues(c.model, "error").Inc()
			return nil, err
		}
		metrics.ClassifierCalls.WithLabelValues(c.model, "ok").Inc()

		if len(resp.Results) != len(chunk) {
			return nil, fmt.Errorf("%w: model %s returned %d results for %d texts",
				ErrMalformedResponse, c.model, len(resp.Results), len(chunk))
		}

		for _, r := range resp.Results {
			id, err := ParseLabelID(r.Label)
			if err != nil {
				return nil, err
			}
			results = append(results, service.ClassificationResult{
				LabelID:    id,
				Label:      r.Label,
				Confidence: r.Score,
			})
		}
	}

	return results, nil
}

// ParseLabelID extracts n from a "LABEL_n" model label
func ParseLabelID(label string) (int, error) {
	digits, ok := strings.CutPrefix(label, labelPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: label %q", ErrMalformedResponse, label)
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: label %q", ErrMalformedResponse, label)
	}
	return id, nil
}
