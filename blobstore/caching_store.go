package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
)

// CachingStore wraps a (typically remote) BlobStore and keeps a copy of every
// blob it reads in a LocalStore. Blobs are assumed immutable: once cached, a
// blob is served from disk until Invalidate is called.
type CachingStore struct {
	inner BlobStore
	local *LocalStore
}

var _ BlobStore = (*CachingStore)(nil)

// NewCachingStore creates a new CachingStore caching inner in local.
func NewCachingStore(inner BlobStore, local *LocalStore) *CachingStore {
	return &CachingStore{
		inner: inner,
		local: local,
	}
}

// Open serves name from the local cache, fetching it from the inner store on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.local.Open(ctx, name)
	if err == nil {
		return rc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	src, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if err := s.local.Put(ctx, name, data); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns the inner store's listing.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Cached reports whether name is in the local cache.
func (s *CachingStore) Cached(ctx context.Context, name string) bool {
	rc, err := s.local.Open(ctx, name)
	if err != nil {
		return false
	}
	_ = rc.Close()
	return true
}

// Invalidate drops the cached copy of name.
func (s *CachingStore) Invalidate(name string) error {
	path, err := s.local.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
