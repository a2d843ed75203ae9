package adapter

import (
	"context"
)

// StoredObject describes an uploaded blob.
type StoredObject struct {
	Path string
	URL  string
}

// BlobStorage defines the interface for evidence image storage.
type BlobStorage interface {
	// Upload stores data at path and returns its public location.
	Upload(ctx context.Context, path string, data []byte, contentType string) (*StoredObject, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
