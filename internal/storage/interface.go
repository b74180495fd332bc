package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotSupported = errors.New("operation not supported by this storage backend")

// StorageInterface defines the interface for car image storage backends.
// Supports the local filesystem and Supabase Storage.
type StorageInterface interface {
	// SaveFile stores the content under key and returns its public URL.
	SaveFile(ctx context.Context, key, contentType string, reader io.Reader) (string, error)

	// ReadFile opens a stored file. Only the local backend serves files
	// itself; others return ErrNotSupported.
	ReadFile(key string) (io.ReadCloser, error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error
}
