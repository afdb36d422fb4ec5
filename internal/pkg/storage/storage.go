package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
)

// Storage stores opaque blobs (staff avatars and their thumbnails) under relative keys.
type Storage interface {
	Save(ctx context.Context, key string, content io.Reader) error
	// Open returns ErrNotFound when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}
