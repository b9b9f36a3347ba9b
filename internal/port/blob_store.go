package port

import "context"

// BlobStore is the persistence substrate: an opaque key to JSON-blob store
// with whole-value semantics. There are no partial updates; a collection is
// always read and written as one blob.
type BlobStore interface {
	// Get returns the blob stored under key, or nil with a nil error when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
