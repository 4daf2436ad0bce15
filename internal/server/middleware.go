package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/schema"
	"github.com/Zachkp/portfolio/internal/seed"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	// statusClientClosedRequest marks requests whose client went away before
	// a response was written.
	statusClientClosedRequest = 499
)

// Seeder is the per-request fallback run when startup does not finish in
// time. TryEnsure must not wait on a pass that is already running.
type Seeder interface {
	TryEnsure(ctx context.Context) error
}

// requestID tags every request with an id, reusing a sane inbound one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// ipHasher replaces client addresses in logs with a salted, truncated hash
// that is stable for the life of the process.
type ipHasher struct{ salt string }

func newIPHasher() ipHasher {
	return ipHasher{salt: rand.Text()}
}

func (h ipHasher) hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// requestLogger logs API calls once they finish. Clients sending DNT are
// logged without the address hash.
func requestLogger(logger *slog.Logger, hasher ipHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if !strings.HasPrefix(path, apiPrefix) {
			return
		}

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		}
		if c.GetHeader("DNT") != "1" {
			attrs = append(attrs, "client", hasher.hash(c.ClientIP()))
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request", attrs...)
	}
}

// readinessGate holds requests until startup seeding finishes. After timeout
// the request seeds on its own through seeder and carries on regardless of
// the outcome.
func readinessGate(ready *Readiness, timeout time.Duration, seeder Seeder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready.Ready() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger.Debug("waiting for server to be ready", "path", c.Request.URL.Path)
		if ready.Wait(ctx, timeout) {
			c.Next()
			return
		}
		if ctx.Err() != nil {
			c.AbortWithStatus(statusClientClosedRequest)
			return
		}

		logger.Warn("startup not ready, seeding from request", "timeout", timeout)
		switch err := seeder.TryEnsure(ctx); {
		case errors.Is(err, seed.ErrInProgress):
			logger.Warn("startup seeding still running, serving current data")
		case err != nil:
			logger.Error("request-time seeding failed", "error", err)
		}
		c.Next()
	}
}

// recovery turns panics into the standard JSON 500.
func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		logger.Error("panic serving request",
			"panic", rec,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"stack", string(debug.Stack()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": internalErrorMessage})
	})
}

const internalErrorMessage = "Internal Server Error"

type statusCoder interface {
	StatusCode() int
}

// errorHandler renders the last error a handler attached with c.Error.
// Validation failures become 400 {message, field}; errors carrying a status
// code below 500 keep it and their message; everything else is logged and
// reported as a bare 500.
func errorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if c.Writer.Written() {
			logger.Error("error after response was written", "error", err, "path", c.Request.URL.Path)
			return
		}

		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			logger.Debug("request rejected", "field", ve.Field, "reason", ve.Message)
			c.JSON(http.StatusBadRequest, ve)
			return
		}

		status := http.StatusInternalServerError
		var sc statusCoder
		if errors.As(err, &sc) && sc.StatusCode() >= 400 {
			status = sc.StatusCode()
		}
		if status < http.StatusInternalServerError {
			c.JSON(status, gin.H{"message": err.Error()})
			return
		}

		logger.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey))
		c.JSON(status, gin.H{"message": internalErrorMessage})
	}
}
