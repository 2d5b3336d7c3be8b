// Package server exposes the message relay over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/brendan.keane/toastsms/internal/config"
	"github.com/brendan.keane/toastsms/internal/errors"
	relayhttp "github.com/brendan.keane/toastsms/internal/http"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled
const shutdownTimeout = 10 * time.Second

// Server routes inbound requests to the message fetcher
type Server struct {
	logger      zerolog.Logger
	cfg         *config.Config
	fetcher     relayhttp.MessageFetcher
	openAPIJSON []byte
	router      chi.Router
}

// New creates a server. openAPIJSON is served verbatim at /openapi.json.
func New(logger zerolog.Logger, cfg *config.Config, fetcher relayhttp.MessageFetcher, openAPIJSON []byte) *Server {
	s := &Server{
		logger:      logger.With().Str("component", "server").Logger(),
		cfg:         cfg,
		fetcher:     fetcher,
		openAPIJSON: openAPIJSON,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, shared by the HTTP listener and the Lambda adapter
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(functionKeyMiddleware(s.cfg.Server.FunctionKey, s.logger))

		r.Get(`/messages/{requestId:\d+\w+}`, s.handleGetMessage)
		r.Get("/openapi.json", s.handleOpenAPI)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, errors.New(errors.ErrorTypeNotFound, "no route matches the request").
			WithContext("path", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, errors.Newf(errors.ErrorTypeMethod, "method %s is not allowed", r.Method).
			WithContext("path", r.URL.Path))
	})

	return r
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, errors.ErrorTypeConfig, "server failed").
			WithContext("addr", srv.Addr)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "graceful shutdown failed")
	}
	return nil
}
