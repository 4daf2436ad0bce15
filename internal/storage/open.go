package storage

import (
	"context"
	"log/slog"
)

// Open chooses the backend once for the life of the process: the SQL store
// when dsn is set and reachable, the memory store otherwise.
func Open(ctx context.Context, dsn string, logger *slog.Logger) Store {
	if dsn == "" {
		logger.Info("no database configured, using in-memory storage")
		return NewMemStore()
	}

	s, err := OpenSQL(ctx, dsn)
	if err != nil {
		logger.Warn("persistent storage unavailable, falling back to in-memory storage", "error", err)
		return NewMemStore()
	}

	logger.Info("using persistent storage", "backend", s.Backend())
	return s
}
