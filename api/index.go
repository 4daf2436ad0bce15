// Package handler is the entry point for hosting platforms that invoke the
// API per request instead of running the binary's listener.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/Zachkp/portfolio/internal/app"
	"github.com/Zachkp/portfolio/internal/config"
)

var (
	initOnce sync.Once
	instance *app.App
	initErr  error
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		slog.Error("server initialization failed", "error", err)
		return
	}
	logger := app.NewLogger(os.Stderr, cfg.LogLevel)
	instance = app.New(context.Background(), cfg, logger)
	// Requests arriving before seeding finishes wait on the readiness gate.
	go instance.Seed(context.Background())
}

// Handler serves one request, building the app on first use.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal Server Error"}`))
		return
	}
	instance.Handler().ServeHTTP(w, r)
}
