// Package blobstore provides read access to ontology documents wherever they live.
//
// BlobStore is the interface for opening and listing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system
//   - MemoryStore: in-memory, for tests
//   - CachingStore: copies blobs of a remote store into a LocalStore on first read
//   - minio.Store: MinIO or any S3-compatible endpoint
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (io.ReadCloser, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Stores that accept writes also implement Putter.
package blobstore
