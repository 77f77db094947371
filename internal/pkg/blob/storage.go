package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Storage is a small named-blob store. The session layer keeps its persisted
// snapshot in one such blob.
type Storage interface {
	// Load returns the blob contents or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save creates or replaces a blob.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
}
