package repository

import "context"

// LabelCache stores final pipeline labels by text
type LabelCache interface {
	// GetMany returns one entry per text; a miss is the empty string
	GetMany(ctx context.Context, texts []string) ([]string, error)

	// SetMany stores labels[i] for texts[i]
	SetMany(ctx context.Context, texts, labels []string) error
}
