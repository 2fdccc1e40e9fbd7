package ontology

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/fastic/blobstore"
)

// Compression identifies a stream compression format.
type Compression uint8

const (
	// CompressionNone indicates a plain document.
	CompressionNone Compression = iota
	// CompressionZSTD indicates a zstd stream (".zst").
	CompressionZSTD
	// CompressionGzip indicates a gzip stream (".gz").
	CompressionGzip
	// CompressionLZ4 indicates an lz4 frame stream (".lz4").
	CompressionLZ4
)

// ErrUnknownCompression is returned for an invalid Compression value.
var ErrUnknownCompression = errors.New("ontology: unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZSTD:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// CompressionFor picks the compression from a blob name's extension.
func CompressionFor(name string) Compression {
	switch path.Ext(name) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".gz":
		return CompressionGzip
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Open opens the named blob and decompresses it according to its extension.
// The caller must close the returned reader.
func Open(ctx context.Context, store blobstore.BlobStore, name string) (io.ReadCloser, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(rc, CompressionFor(name))
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return r, nil
}

// NewReader wraps rc in a decompressor. Closing the result closes rc.
func NewReader(rc io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return rc, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: dec, close: func() error {
			dec.Close()
			return rc.Close()
		}}, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, close: func() error {
			return errors.Join(zr.Close(), rc.Close())
		}}, nil
	case CompressionLZ4:
		return &readCloser{Reader: lz4.NewReader(rc), close: rc.Close}, nil
	default:
		return nil, ErrUnknownCompression
	}
}

// NewWriter wraps w in a compressor. Closing the result flushes the
// compressed stream but does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, ErrUnknownCompression
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
