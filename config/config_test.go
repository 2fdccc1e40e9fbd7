package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/blobstore"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SourceLocal, cfg.Source.Type)
	assert.Equal(t, BackendMemory, cfg.Reasoner.Backend)
	assert.Equal(t, fastic.DefaultCacheSize, cfg.Checker.CacheSize)
	assert.False(t, cfg.Checker.ClosedWorld)
	assert.Len(t, cfg.Options(), 5)
	assert.Equal(t, "go-json", cfg.OutputCodec().Name())
}

func TestParse(t *testing.T) {
	t.Setenv("FASTIC_TEST_SECRET", "s3cret")

	cfg, err := Parse([]byte(`
source:
  type: minio
  endpoint: localhost:9000
  bucket: ontologies
  secret_key: ${FASTIC_TEST_SECRET}
reasoner:
  backend: sqlite
  path: kb.db
checker:
  closed_world: true
  fetch_concurrency: 4
  disable_bulk: true
log:
  level: debug
  format: json
codec: json
`))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Source.SecretKey)
	assert.Equal(t, BackendSQLite, cfg.Reasoner.Backend)
	assert.True(t, cfg.Checker.ClosedWorld)
	assert.Equal(t, 4, cfg.Checker.FetchConcurrency)
	// Untouched fields keep their defaults.
	assert.Equal(t, fastic.DefaultCacheSize, cfg.Checker.CacheSize)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.Options(), 6)
	assert.Equal(t, "json", cfg.OutputCodec().Name())
	assert.True(t, cfg.Logger().Enabled(t.Context(), -4))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"syntax", "source: [", []string{"invalid config"}},
		{"unknown source", "source: {type: ftp}", []string{`unknown source.type "ftp"`}},
		{"minio without endpoint", "source: {type: minio}", []string{"source.endpoint", "source.bucket"}},
		{"s3 without bucket", "source: {type: s3}", []string{"source.bucket is required for s3"}},
		{"sqlite without path", "reasoner: {backend: sqlite}", []string{"reasoner.path"}},
		{"negative values", "checker: {cache_size: -1, fetch_concurrency: 0, rate_limit: -2}", []string{"cache_size", "fetch_concurrency", "rate_limit"}},
		{"log", "log: {level: loud, format: xml}", []string{"log.level", `unknown log.format "xml"`}},
		{"codec", "codec: msgpack", []string{`unknown codec "msgpack"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidConfig)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fastic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checker:\n  cache_size: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Checker.CacheSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_Open(t *testing.T) {
	ctx := t.Context()

	store, err := Source{Type: SourceLocal, Root: t.TempDir()}.Open(ctx)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)

	store, err = Source{
		Type:     SourceMinio,
		Endpoint: "localhost:9000",
		Bucket:   "ontologies",
		CacheDir: t.TempDir(),
	}.Open(ctx)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.CachingStore{}, store)
}
