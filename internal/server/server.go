// Package server is the feedboard development API: a chi router over the
// board service exposing feedback, comments and accounts as JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Options configures the router and the listener.
type Options struct {
	Addr           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Profiling mounts the pprof handlers under /debug.
	Profiling bool
}

// Server serves the board API.
type Server struct {
	svc  *board.Service
	opts Options
	log  zerolog.Logger
}

// New creates a server for svc.
func New(svc *board.Service, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	return &Server{
		svc:  svc,
		opts: opts,
		log:  logging.WithContextFields(logging.Component("server")),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	if s.opts.Profiling {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Post("/login", s.login)
	r.Post("/register", s.register)
	r.Get("/feedback", s.listFeedback)
	r.Get("/feedback/{id}", s.showFeedback)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/logout", s.logout)
		r.Get("/user", s.currentUser)
		r.Post("/feedback", s.createFeedback)
		r.Post("/feedback/{id}/comments", s.createComment)
		r.Put("/comments/{id}", s.updateComment)
		r.Delete("/comments/{id}", s.deleteComment)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}
