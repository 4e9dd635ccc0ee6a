// Package server wires the router, session store and HTTP server together.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"movie-ticket-cart/internal/config"
	"movie-ticket-cart/internal/handlers"
	"movie-ticket-cart/internal/middleware"
	"movie-ticket-cart/web"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

// Session files hold the cart snapshot, which outgrows the 4KB securecookie default
const sessionMaxLength = 64 * 1024

const requestTimeout = 30 * time.Second

// Server is the movie ticket web server
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

// NewSessionStore creates the server-side session store the carts live in
func NewSessionStore(cfg *config.Config) (*sessions.FilesystemStore, error) {
	dir := cfg.Session.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "movie-ticket-cart-sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	store := sessions.NewFilesystemStore(dir, []byte(cfg.Session.Secret))
	store.MaxLength(sessionMaxLength)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

// New builds the server and its routes
func New(cfg *config.Config, logger *zap.Logger, movies handlers.MovieCatalog, store sessions.Store) (*Server, error) {
	pricing, err := cfg.PricingTable()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: middleware.NewRateLimiter(cfg.Limits.Requests, cfg.Limits.Window),
	}

	printer := message.NewPrinter(cfg.Language())
	carts := handlers.NewCartSessions(store, pricing, logger)
	publicHandler := handlers.NewPublicHandler(movies, carts, cfg.TMDB.ImageBaseURL, printer, logger)
	cartHandler := handlers.NewCartHandler(movies, carts, printer, logger)
	csrfMiddleware := middleware.NewCSRFMiddleware(store, logger)

	r := chi.NewRouter()

	if cfg.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.ErrorHandlingMiddleware(logger))
	r.Use(middleware.SecureHeaders)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/health", publicHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware.EnsureCSRFToken)

		r.Get("/", publicHandler.HomePage)
		r.Get("/movies", publicHandler.MoviesFragment)

		r.Route("/cart", func(r chi.Router) {
			r.Use(csrfMiddleware.CSRFProtection)
			r.Use(middleware.RateLimit(s.limiter, logger))
			r.Get("/", cartHandler.ViewCart)
			r.Post("/add", cartHandler.AddTicket)
			r.Post("/decrement", cartHandler.DecrementTicket)
			r.Post("/remove", cartHandler.RemoveTicket)
			r.Post("/clear", cartHandler.ClearCart)
		})
	})

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases background resources without serving
func (s *Server) Close() {
	s.limiter.Stop()
}
