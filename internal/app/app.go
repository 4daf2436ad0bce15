// Package app assembles the portfolio server from its configuration. It is
// the only place that decides which storage backend runs.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// App owns the store, the seeder and the HTTP server built over them.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	store  storage.Store
	seeder *seed.Seeder
	ready  *server.Readiness
	server *server.Server
}

// New picks the storage backend and builds the HTTP server. It never fails:
// an unusable database falls back to in-memory storage.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *App {
	if cfg.Development() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store := storage.Open(ctx, cfg.DatabaseURL, logger)
	seeder := seed.New(store, logger)
	ready := server.NewReadiness()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	staticDir := cfg.StaticDir
	if cfg.Serverless {
		staticDir = ""
	}

	srv := server.New(server.Options{
		Store:        store,
		Seeder:       seeder,
		Readiness:    ready,
		ReadyTimeout: cfg.ReadyTimeout,
		Logger:       logger,
		Notifier:     notify.New(cfg.SMTP),
		Registry:     reg,
		StaticDir:    staticDir,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
		seeder: seeder,
		ready:  ready,
		server: srv,
	}
}

// Seed populates empty collections and then opens the readiness gate.
// Failures are logged; the server keeps serving whatever was stored.
func (a *App) Seed(ctx context.Context) {
	a.logger.Info("seeding database")
	if err := a.seeder.Ensure(ctx); err != nil {
		a.logger.Error("database seeding failed", "error", err)
	}
	a.ready.MarkReady()
	a.logger.Info("server initialization complete")
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler { return a.server.Handler() }

// Backend names the selected storage backend.
func (a *App) Backend() string { return a.store.Backend() }

// Ready reports whether startup seeding has finished.
func (a *App) Ready() bool { return a.ready.Ready() }

// Run binds the listener, seeds, and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	a.logger.Info("serving", "addr", srv.Addr, "backend", a.Backend())

	a.Seed(ctx)

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		a.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	a.server.Drain()
	return serveErr
}

// Close releases the store.
func (a *App) Close() error {
	a.server.Drain()
	return a.store.Close()
}

// NewLogger returns a text logger at level (debug, info, warn, error).
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
