// Package main runs the portfolio API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/app"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/storage"
)

const (
	Version = "0.1.0"
	appName = "portfolio"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), logLevel)
		},
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Portfolio website API",
		Long: `Serves the portfolio content (skills, projects, education, certifications,
publications) and accepts contact form submissions.

Content is stored in Postgres or SQLite when DATABASE_URL is set and
reachable, and in memory otherwise.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(serve)
	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Seed the configured store and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), logLevel)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func loadConfig(logLevel string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runServe(ctx context.Context, logLevel string) error {
	cfg, err := loadConfig(logLevel)
	if err != nil {
		return err
	}
	logger := app.NewLogger(os.Stderr, cfg.LogLevel)

	if cfg.Serverless {
		logger.Info("serverless mode, not binding a listener; the platform invokes api.Handler")
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(ctx, cfg, logger)
	defer a.Close()
	return a.Run(ctx)
}

func runSeed(ctx context.Context, logLevel string) error {
	cfg, err := loadConfig(logLevel)
	if err != nil {
		return err
	}
	logger := app.NewLogger(os.Stderr, cfg.LogLevel)
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set; seeding the in-memory store would be lost on exit")
	}

	store, err := storage.OpenSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := seed.New(store, logger).Run(ctx); err != nil {
		return fmt.Errorf("seed %s store: %w", store.Backend(), err)
	}
	logger.Info("database seeding finished", "backend", store.Backend())
	return nil
}
