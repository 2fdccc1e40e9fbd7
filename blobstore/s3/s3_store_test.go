package s3

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastic/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := t.Context()

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-fastic-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, prefix)
	require.NoError(t, err)

	t.Run("Put and Open", func(t *testing.T) {
		data := []byte("Ontology(<http://example.org/family>)")
		require.NoError(t, store.Put(ctx, "family.ofn", data))

		blobs, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, blobs, "family.ofn")

		rc, err := store.Open(ctx, "family.ofn")
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, data, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "nonexistent")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
