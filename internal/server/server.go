// Package server provides the jobdeck mock API server: a chi-based backend
// that serves a YAML dataset through the same list semantics the client uses
// locally, so the TUI and CLI can be exercised against real HTTP without a
// production deployment.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/jobdeck/internal/api"
	"github.com/leapstack-labs/jobdeck/internal/server/notifier"
)

// Config holds the mock server configuration.
type Config struct {
	Port int
	// DataPath is an optional YAML dataset to serve instead of the embedded
	// fixtures.
	DataPath string
	// Watch reloads DataPath when the file changes and notifies SSE clients.
	Watch  bool
	Logger *slog.Logger
}

// Server serves the dataset over HTTP.
type Server struct {
	port     int
	dataPath string
	watch    bool
	logger   *slog.Logger
	notifier *notifier.Notifier

	mu sync.RWMutex
	ds *api.Dataset
}

// New creates a server and loads its initial dataset.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		port:     cfg.Port,
		dataPath: cfg.DataPath,
		watch:    cfg.Watch,
		logger:   logger,
		notifier: notifier.New(),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Notifier returns the reload notifier, exposed for tests.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting mock API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.dataPath != "" {
		eg.Go(func() error {
			return s.watchDataFile(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down mock API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Router builds the HTTP routes. Exposed so tests can drive handlers through
// httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/export", s.handleExport)
		r.Get("/events", s.handleEvents)

		r.Get("/applicants", listHandler(s, api.ApplicantColumns(), api.ApplicantValue, func(ds *api.Dataset) []api.Applicant { return ds.Applicants }))
		r.Get("/applicants/{id}", detailHandler(s, func(ds *api.Dataset) []api.Applicant { return ds.Applicants }, func(a api.Applicant) string { return a.ID }))

		r.Get("/companies", listHandler(s, api.CompanyColumns(), api.CompanyValue, func(ds *api.Dataset) []api.Company { return ds.Companies }))
		r.Get("/companies/{id}", detailHandler(s, func(ds *api.Dataset) []api.Company { return ds.Companies }, func(c api.Company) string { return c.ID }))

		r.Get("/jobs", listHandler(s, api.JobColumns(), api.JobValue, func(ds *api.Dataset) []api.JobPost { return ds.Jobs }))
		r.Get("/jobs/{id}", detailHandler(s, func(ds *api.Dataset) []api.JobPost { return ds.Jobs }, func(j api.JobPost) string { return j.ID }))
	})
	return r
}

// dataset returns the current dataset snapshot.
func (s *Server) dataset() *api.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// reload replaces the served dataset from DataPath, or the embedded fixtures
// when no path is configured.
func (s *Server) reload() error {
	var (
		ds  *api.Dataset
		err error
	)
	if s.dataPath != "" {
		ds, err = api.LoadDataset(s.dataPath)
	} else {
		ds, err = api.Fixtures()
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	s.logger.Debug("dataset loaded",
		"applicants", len(ds.Applicants),
		"companies", len(ds.Companies),
		"jobs", len(ds.Jobs))
	return nil
}

// watchDataFile reloads the dataset when the backing file changes. Editors
// produce bursts of write events, so reloads are debounced.
func (s *Server) watchDataFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors that write-and-rename replace the inode,
	// which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(s.dataPath)); err != nil {
		return fmt.Errorf("failed to watch dataset directory: %w", err)
	}

	target := filepath.Clean(s.dataPath)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("dataset changed, reloading", "file", event.Name)
				if err := s.reload(); err != nil {
					s.logger.Error("reload failed", "error", err)
					return
				}
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
