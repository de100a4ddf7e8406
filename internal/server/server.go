// Package server serves the lead form over HTTP: one controller per visitor
// session, the landing page, the progressive enhancement endpoints and a
// JSON submission API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/internal/metrics"
	"github.com/goliatone/go-leadform/pkg/config"
	"github.com/goliatone/go-leadform/pkg/controller"
	"github.com/goliatone/go-leadform/pkg/interfaces"
	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
)

const (
	// SessionCookie names the cookie carrying the session id.
	SessionCookie = "leadform_session"
	// CSRFHeader carries the session token on script driven requests.
	CSRFHeader = "X-CSRF-Token"

	// RuntimePrefix and AssetsPrefix are where static files are mounted.
	RuntimePrefix = "/runtime/"
	AssetsPrefix  = "/assets/"

	maxFormBytes = 64 << 10
)

// Deps are the collaborators the server wires into every session.
type Deps struct {
	Extractor controller.Extractor
	Catalog   *render.Catalog
	Renderer  *vanilla.Renderer
	// Metrics is optional; nil disables /metrics and instrumentation.
	Metrics *metrics.Metrics
	// Provider supplies module loggers. Nil logs nothing.
	Provider interfaces.LoggerProvider
	Theme    *theme.RendererConfig
	// RuntimeFS serves the browser runtime under /runtime/.
	RuntimeFS fs.FS
}

// Server is the HTTP front end.
type Server struct {
	cfg     config.ServerConfig
	deps    Deps
	store   *SessionStore
	limiter *RateLimiter
	logger  interfaces.Logger
	router  chi.Router
}

// New validates deps and builds the router.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Extractor == nil {
		return nil, errors.New("server: extractor is required")
	}
	if deps.Catalog == nil {
		catalog, err := render.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("server: load catalog: %w", err)
		}
		deps.Catalog = catalog
	}
	if deps.Renderer == nil {
		renderer, err := vanilla.New(
			vanilla.WithTranslator(deps.Catalog),
			vanilla.WithScriptURL(RuntimePrefix+"leadform.js"),
		)
		if err != nil {
			return nil, fmt.Errorf("server: build renderer: %w", err)
		}
		deps.Renderer = renderer
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logging.ModuleLogger(deps.Provider, logging.ServerModule),
	}

	var onCount func(int)
	if deps.Metrics != nil {
		onCount = deps.Metrics.SetActiveSessions
	}
	s.store = NewSessionStore(cfg.SessionTTL, s.newController, onCount)
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.SessionTTL, s.logger)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) newController(locale string) (*controller.Controller, error) {
	opts := []controller.Option{
		controller.WithTranslator(s.deps.Catalog),
		controller.WithLocale(locale),
		controller.WithLogger(logging.ModuleLogger(s.deps.Provider, logging.ControllerModule)),
	}
	if s.deps.Metrics != nil {
		opts = append(opts, controller.WithObserver(s.deps.Metrics))
	}
	return controller.New(s.deps.Extractor, opts...)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore {
	return s.store
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.deps.Metrics != nil {
		r.Use(s.deps.Metrics.Instrument)
	}

	r.Get("/", s.handlePage)
	r.Post("/fields/{field}", s.handleField)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Handler)
		}
		r.Post("/", s.handleSubmit)
		r.Post("/api/submissions", s.handleAPISubmit)
	})

	if s.deps.Metrics != nil && s.cfg.Metrics {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}
	r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServerFS(vanilla.AssetsFS())))
	if s.deps.RuntimeFS != nil {
		r.Handle(RuntimePrefix+"*", http.StripPrefix(RuntimePrefix, http.FileServerFS(s.deps.RuntimeFS)))
	}
	return r
}

// Run serves on cfg.Addr until ctx is done, then shuts down within the
// configured grace period. Expired sessions are swept once per minute.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweep(sweepCtx, time.Minute)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.logger.Info("server.listening", "addr", s.cfg.Addr)

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server.stopped")
	return nil
}

func (s *Server) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.store.Sweep(); removed > 0 {
				s.logger.Debug("sessions.evicted", "count", removed)
			}
			if s.limiter != nil {
				s.limiter.Cleanup()
			}
		}
	}
}
