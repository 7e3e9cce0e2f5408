// Package storage abstracts where uploaded image files live. The filesystem
// store backs local development, the MinIO store any S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the object does not exist in the store.
var ErrNotFound = errors.New("storage: object not found")

// ImageStore persists uploaded image files under caller-chosen paths.
// Paths are slash-separated keys relative to the store root, never absolute.
type ImageStore interface {
	// Put writes the object, creating intermediate directories or buckets as
	// needed. size may be -1 when unknown.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	// Get opens the object for reading. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the object. Deleting an absent object is not an error;
	// file deletion runs before row deletion, and a retried cascade must not
	// fail on work the first attempt already did.
	Delete(ctx context.Context, path string) error
}
