// Package handlers exposes the text catalog and the CSV reporting pipeline
// over HTTP. This layer owns the synchronization around the catalog: reads
// take a shared lock, administrative reloads an exclusive one.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/textcat/internal/config"
	"github.com/dmitrymomot/textcat/internal/jobs"
	"github.com/dmitrymomot/textcat/internal/reporter"
	"github.com/dmitrymomot/textcat/pkg/catalog"
)

// Version reported by the admin info endpoint.
const Version = "0.1.0"

// CheckFunc is a readiness check.
type CheckFunc func(ctx context.Context) error

// Service carries the shared state behind every handler.
type Service struct {
	mu     sync.RWMutex
	cat    *catalog.Catalog
	repCfg *reporter.Config

	adapter reporter.Adapter
	jobs    *jobs.Manager
	cfg     config.Config
	log     *slog.Logger
	checks  map[string]CheckFunc

	startedAt time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithReporterConfig attaches the loaded query/CSV-spec config.
func WithReporterConfig(cfg *reporter.Config) Option {
	return func(s *Service) { s.repCfg = cfg }
}

// WithAdapter attaches the report query adapter. Without one the report
// endpoints answer 503.
func WithAdapter(adapter reporter.Adapter) Option {
	return func(s *Service) { s.adapter = adapter }
}

// WithJobManager replaces the internally created job manager.
func WithJobManager(m *jobs.Manager) Option {
	return func(s *Service) { s.jobs = m }
}

// WithReadinessCheck registers a named check run by the readiness endpoint.
func WithReadinessCheck(name string, check CheckFunc) Option {
	return func(s *Service) { s.checks[name] = check }
}

// New creates the handler service around a populated catalog.
func New(cfg config.Config, cat *catalog.Catalog, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cat:       cat,
		repCfg:    reporter.NewConfig(),
		cfg:       cfg,
		log:       log,
		checks:    make(map[string]CheckFunc),
		startedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.jobs == nil {
		s.jobs = jobs.NewManager(log)
	}
	return s
}

// Jobs returns the job manager, for shutdown draining.
func (s *Service) Jobs() *jobs.Manager {
	return s.jobs
}

// Router assembles all routes.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleLiveness)
	r.Get("/readyz", s.handleReadiness)

	r.Get("/texts", s.handleListLabels)
	r.Get("/texts/{label}", s.handleGetText)
	r.Post("/texts/{label}/format", s.handleFormatText)
	r.Get("/languages", s.handleLanguages)

	r.Get("/config/queries", s.handleListQueries)
	r.Get("/config/csv-configs", s.handleListCSVConfigs)

	r.Post("/reports/{label}", s.handleStartReport)

	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/active", s.handleActiveJobs)
	r.Post("/jobs/dummy", s.handleDummyJob)
	r.Get("/jobs/{id}", s.handleGetJob)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/reload", s.handleReloadCatalog)
		r.Post("/reload-config", s.handleReloadReporterConfig)
		r.Get("/info", s.handleInfo)
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
