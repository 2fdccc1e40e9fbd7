package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastic"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.ofn")
	require.NoError(t, os.WriteFile(path, []byte(familyOntology), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 100*time.Millisecond, fastic.NoopLogger(), func(context.Context) error {
			reloads.Add(1)
			return errors.New("keeps the previous state")
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ofn"), nil, 0o600))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(familyOntology), 0o600))
	}

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	// Three writes inside one debounce interval reload once.
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(t.Context(), filepath.Join(t.TempDir(), "missing", "family.ofn"), time.Millisecond, fastic.NoopLogger(), nil)
	assert.Error(t, err)
}
