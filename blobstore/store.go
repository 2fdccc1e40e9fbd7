package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading ontology documents by name.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for sequential reading. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns the names of all blobs starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Putter is implemented by stores that accept writes.
type Putter interface {
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
}
