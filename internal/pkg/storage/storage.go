package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface for file storage backends.
// Payment proofs and provider documents are opaque blobs to the rest of
// the system; only the storage key travels through the domain layer.
type Storage interface {
	// Put stores a file under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a file by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for a stored file.
	GetURL(key string) string
}

// FileInfo describes a stored file
type FileInfo struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}
