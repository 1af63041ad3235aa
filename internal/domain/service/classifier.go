package service

import "context"

// ClassificationResult is the model output for one text
type ClassificationResult struct {
	LabelID    int     `json:"label_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier defines the interface for a trained text classifier
type Classifier interface {
	// ClassifyBatch classifies texts and returns one result per text, in order
	ClassifyBatch(ctx context.Context, texts []string, requestID string) ([]ClassificationResult, error)
}
