// Package blobstore abstracts the storage of named, immutable dataset
// blobs. Backends exist for memory (tests), the local filesystem, Amazon
// S3, and MinIO/S3-compatible object stores.
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing named blobs.
// Blobs are written atomically and read whole.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the blob names matching the prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
