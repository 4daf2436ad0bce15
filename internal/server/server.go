// Package server exposes the portfolio content and the contact form over
// HTTP with gin.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/schema"
	"github.com/Zachkp/portfolio/internal/storage"
)

const (
	apiPrefix = "/api"

	// maxBodyBytes caps the contact form payload.
	maxBodyBytes = 64 << 10

	notifyTimeout = 30 * time.Second
)

// Options wires a Server. Store, Seeder, Readiness and Logger are required.
type Options struct {
	Store        storage.Store
	Seeder       Seeder
	Readiness    *Readiness
	ReadyTimeout time.Duration
	Logger       *slog.Logger

	// Notifier defaults to notify.Nop.
	Notifier notify.Notifier
	// Registry receives the HTTP metrics and backs /metrics. A private
	// registry is created when nil.
	Registry *prometheus.Registry
	// StaticDir, when set, serves the built client for non-API paths.
	StaticDir string
}

// Server is the HTTP surface of the portfolio.
type Server struct {
	engine   *gin.Engine
	store    storage.Store
	notifier notify.Notifier
	ready    *Readiness
	logger   *slog.Logger

	// pending tracks notification emails still being sent.
	pending sync.WaitGroup
}

func New(opts Options) *Server {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		engine:   gin.New(),
		store:    opts.Store,
		notifier: opts.Notifier,
		ready:    opts.Readiness,
		logger:   opts.Logger,
	}

	r := s.engine
	r.Use(
		requestID(),
		requestLogger(opts.Logger, newIPHasher()),
		newMetrics(opts.Registry).middleware(),
		recovery(opts.Logger),
		errorHandler(opts.Logger),
	)

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	api := r.Group(apiPrefix)
	api.Use(readinessGate(opts.Readiness, opts.ReadyTimeout, opts.Seeder, opts.Logger))
	api.GET("/skills", listHandler(s.store.ListSkills))
	api.GET("/projects", listHandler(s.store.ListProjects))
	api.GET("/education", listHandler(s.store.ListEducation))
	api.GET("/certifications", listHandler(s.store.ListCertifications))
	api.GET("/publications", listHandler(s.store.ListPublications))
	api.POST("/contact", s.submitContact)

	r.NoRoute(notFound(opts.StaticDir, opts.Logger))

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Drain waits for notification emails that are still in flight.
func (s *Server) Drain() { s.pending.Wait() }

// listHandler returns the whole collection; an empty one is [] rather than
// null.
func listHandler[T any](list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func (s *Server) submitContact(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var in schema.InsertMessage
	if err := schema.Decode(body, &in); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := s.store.CreateMessage(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	s.notify(c.Request.Context(), msg)
	c.JSON(http.StatusCreated, msg)
}

// notify mails the owner in the background; failures are only logged since
// the message is already stored.
func (s *Server) notify(ctx context.Context, msg schema.Message) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Error("contact notification failed", "message_id", msg.ID, "error", err)
			return
		}
		s.logger.Debug("contact notification sent", "message_id", msg.ID)
	}()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"ready":   s.ready.Ready(),
		"backend": s.store.Backend(),
	})
}
