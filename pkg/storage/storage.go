// Package storage persists uploaded files behind a small key-addressed interface.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Delete when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Store saves objects under slash-separated keys such as "sector-items/x.jpg".
// Callers are responsible for validating keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
