// Package control exposes a running effect chain over HTTP. Every request
// is executed on the audio goroutine through the chain's control queue.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds server configuration.
type Config struct {
	Addr         string
	QueryTimeout time.Duration
}

// DefaultConfig returns the settings used by gtrfx serve.
func DefaultConfig() Config {
	return Config{Addr: "127.0.0.1:8080", QueryTimeout: 2 * time.Second}
}

// Server is the HTTP control surface of one chain.
type Server struct {
	config Config
	chain  *effectchain.Chain
	router *chi.Mux
	logger *slog.Logger
}

// New creates a server for chain. A nil logger discards output.
func New(chain *effectchain.Chain, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultConfig().QueryTimeout
	}

	s := &Server{
		config: cfg,
		chain:  chain,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.setupRoutes()

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/effects", s.handleEffects)

	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.handleListNodes)
		r.Post("/", s.handleAddNode)
		r.Get("/{id}", s.handleGetNode)
		r.Delete("/{id}", s.handleRemoveNode)
		r.Put("/{id}/params", s.handleSetParams)
		r.Put("/{id}/state", s.handleSetState)
	})

	r.Get("/patch", s.handleGetPatch)
	r.Put("/patch", s.handleLoadPatch)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("control server starting", slog.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("control: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down control server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", slog.Any("error", err))
		return err
	}

	return nil
}

// logRequests records one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
