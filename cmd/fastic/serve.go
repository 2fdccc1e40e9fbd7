package main

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/codec"
	"github.com/hupe1980/fastic/config"
	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/metrics/prom"
	"github.com/hupe1980/fastic/model"
)

var (
	serveAddr  string
	serveWatch bool
)

// errWatchUnsupported is returned by --watch for sources other than local
// documents loaded into memory.
var errWatchUnsupported = errors.New("--watch requires a local source and the memory backend")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve instance queries over HTTP",
	Long: `Serve instance queries over HTTP.

Endpoints:
  GET  /instances?expr=EXPR[&direct=true][&count=true]
  POST /reset
  GET  /stats
  GET  /metrics
  GET  /healthz

With --watch the ontology is reloaded whenever the local document changes.

Examples:
  fastic serve -o family.ofn --addr :8080
  fastic serve -o family.ofn --watch
  curl 'localhost:8080/instances?expr=ObjectSomeValuesFrom(:hasChild%20:Person)'`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the ontology when the local document changes")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger := cfg.Logger()
	if serveWatch && (cfg.Source.Type != config.SourceLocal || cfg.Reasoner.Backend != config.BackendMemory) {
		return errWatchUnsupported
	}

	kb, err := openKnowledgeBase(ctx, cfg, logger, ontologyName)
	if err != nil {
		return err
	}
	defer kb.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := append(cfg.Options(), fastic.WithMetricsCollector(prom.NewCollector(reg)))
	c, err := fastic.New(ctx, kb.reasoner, opts...)
	if err != nil {
		return err
	}

	s := newServer(c, kb.prefixes, logger, reg, cfg.OutputCodec())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if serveWatch {
		path := filepath.Join(cfg.Source.Root, filepath.FromSlash(ontologyName))
		go func() {
			err := watchFile(ctx, path, defaultDebounce, logger, func(ctx context.Context) error {
				kb, err := openKnowledgeBase(ctx, cfg, logger, ontologyName)
				if err != nil {
					return err
				}
				c, err := fastic.New(ctx, kb.reasoner, opts...)
				if err != nil {
					return err
				}
				s.swap(c, kb.prefixes)
				return nil
			})
			if err != nil {
				logger.ErrorContext(ctx, "watch failed", "path", path, "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// server serializes every checker call behind one mutex. The mutex also
// guards swapping in a reloaded checker.
type server struct {
	mu       sync.Mutex
	checker  *fastic.Checker
	prefixes *model.Prefixes
	logger   *fastic.Logger
	registry *prometheus.Registry
	codec    codec.Codec
}

func newServer(c *fastic.Checker, prefixes *model.Prefixes, logger *fastic.Logger, reg *prometheus.Registry, cc codec.Codec) *server {
	return &server{
		checker:  c,
		prefixes: prefixes,
		logger:   logger,
		registry: reg,
		codec:    cc,
	}
}

// swap replaces the checker and prefixes after a reload.
func (s *server) swap(c *fastic.Checker, prefixes *model.Prefixes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checker = c
	s.prefixes = prefixes
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /instances", s.handleInstances)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleInstances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("expr")
	if text == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing expr parameter"})
		return
	}
	direct, _ := strconv.ParseBool(q.Get("direct"))
	countOnly, _ := strconv.ParseBool(q.Get("count"))

	s.mu.Lock()
	defer s.mu.Unlock()

	ce, err := expr.Parse(text, s.prefixes)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res := instancesResult{Expression: expr.Format(ce, s.prefixes)}
	if countOnly && !direct {
		res.Count, err = s.checker.Count(r.Context(), ce)
	} else {
		// Instances logs that direct is not distinguished.
		var seq iter.Seq[model.Individual]
		seq, err = s.checker.Instances(r.Context(), ce, direct)
		if err == nil {
			names := []string{}
			for ind := range seq {
				names = append(names, s.prefixes.Abbreviate(string(ind)))
			}
			res.Count = len(names)
			if !countOnly {
				res.Instances = names
			}
		}
	}

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fastic.ErrMalformedExpression) {
			status = http.StatusBadRequest
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.checker.Reset(r.Context())
	stats := s.checker.Stats()
	s.mu.Unlock()

	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := s.checker.Stats()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
