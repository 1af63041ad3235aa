package repository

import (
	"context"
	"io"
)

// ObjectStore is the bucket holding raw exports and processed results
type ObjectStore interface {
	// List returns object names under prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Get opens an object for reading; the caller closes it
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Put uploads size bytes from r under name
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
}
