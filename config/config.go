// Package config reads the YAML configuration of the fastic command.
//
//	source:
//	  type: minio            # local | minio | s3
//	  endpoint: localhost:9000
//	  bucket: ontologies
//	  access_key: ${MINIO_ACCESS_KEY}
//	  secret_key: ${MINIO_SECRET_KEY}
//	  cache_dir: /var/cache/fastic
//	reasoner:
//	  backend: sqlite        # memory | sqlite
//	  path: family.db
//	checker:
//	  cache_size: 256
//	  closed_world: true
//	  fetch_concurrency: 8
//	log:
//	  level: debug
//	  format: json
//	codec: go-json           # json | go-json
//
// Environment variables in the file are expanded before parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/codec"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Source types.
const (
	SourceLocal = "local"
	SourceMinio = "minio"
	SourceS3    = "s3"
)

// Reasoner backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the complete command configuration.
type Config struct {
	Source   Source   `yaml:"source"`
	Reasoner Reasoner `yaml:"reasoner"`
	Checker  Checker  `yaml:"checker"`
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
	// Codec encodes JSON output.
	Codec string `yaml:"codec"`
}

// Source selects where ontology documents are read from.
type Source struct {
	Type      string `yaml:"type"`
	Root      string `yaml:"root"`
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
	// CacheDir keeps local copies of remote documents.
	CacheDir string `yaml:"cache_dir"`
}

// Reasoner selects the base reasoner.
type Reasoner struct {
	Backend string `yaml:"backend"`
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// Checker holds the instance checker options.
type Checker struct {
	CacheSize        int     `yaml:"cache_size"`
	ClosedWorld      bool    `yaml:"closed_world"`
	FetchConcurrency int     `yaml:"fetch_concurrency"`
	RateLimit        float64 `yaml:"rate_limit"`
	DisableBulk      bool    `yaml:"disable_bulk"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Server configures "fastic serve".
type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source:   Source{Type: SourceLocal, Root: "."},
		Reasoner: Reasoner{Backend: BackendMemory},
		Checker: Checker{
			CacheSize:        fastic.DefaultCacheSize,
			FetchConcurrency: 1,
		},
		Log:    Log{Level: "info", Format: "text"},
		Server: Server{Addr: ":8080"},
		Codec:  codec.Default.Name(),
	}
}

// Load reads and validates the file at path. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse reads and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem of the configuration.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Source.Type {
	case SourceLocal:
	case SourceMinio:
		if c.Source.Endpoint == "" {
			invalid("source.endpoint is required for minio")
		}
		if c.Source.Bucket == "" {
			invalid("source.bucket is required for minio")
		}
	case SourceS3:
		if c.Source.Bucket == "" {
			invalid("source.bucket is required for s3")
		}
	default:
		invalid("unknown source.type %q", c.Source.Type)
	}

	switch c.Reasoner.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Reasoner.Path == "" {
			invalid("reasoner.path is required for sqlite")
		}
	default:
		invalid("unknown reasoner.backend %q", c.Reasoner.Backend)
	}

	if c.Checker.CacheSize < 0 {
		invalid("checker.cache_size must not be negative")
	}
	if c.Checker.FetchConcurrency < 1 {
		invalid("checker.fetch_concurrency must be at least 1")
	}
	if c.Checker.RateLimit < 0 {
		invalid("checker.rate_limit must not be negative")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		invalid("unknown log.format %q", c.Log.Format)
	}

	if _, ok := codec.ByName(c.Codec); !ok {
		invalid("unknown codec %q", c.Codec)
	}

	return errors.Join(errs...)
}

// OutputCodec returns the configured codec.
func (c *Config) OutputCodec() codec.Codec {
	if cc, ok := codec.ByName(c.Codec); ok {
		return cc
	}
	return codec.Default
}

// Logger builds the configured logger.
func (c *Config) Logger() *fastic.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Log.Level))
	if c.Log.Format == "json" {
		return fastic.NewJSONLogger(level)
	}
	return fastic.NewTextLogger(level)
}

// Options converts the checker section to checker options.
func (c *Config) Options() []fastic.Option {
	opts := []fastic.Option{
		fastic.WithCacheSize(c.Checker.CacheSize),
		fastic.WithClosedWorldNegation(c.Checker.ClosedWorld),
		fastic.WithFetchConcurrency(c.Checker.FetchConcurrency),
		fastic.WithReasonerRateLimit(c.Checker.RateLimit),
		fastic.WithLogger(c.Logger()),
	}
	if c.Checker.DisableBulk {
		opts = append(opts, fastic.WithoutBulkMaterialization())
	}
	return opts
}
