// Package storage persists media blobs (ticket QR images, event posters,
// avatars) under stable keys and resolves them to client-facing URLs.
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Put writes the blob under key, overwriting any previous content.
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	// Remove deletes the blob; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// URL resolves a key to the URL embedded in serialized responses.
	URL(key string) string
}
