// Package rest exposes the HTTP API: movie search/detail proxying, user
// registration and login, and the authorized watched-list CRUD.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/reelist/reelist/internal/logging"
	"github.com/reelist/reelist/internal/server/config"
	"github.com/reelist/reelist/internal/server/services"
)

// Server binds the HTTP routes to the service layer.
type Server struct {
	address        string
	logger         logging.Logger
	userService    *services.UserService
	watchedService *services.WatchedService
	finder         MovieFinder
	jwtSecret      []byte
	corsOrigins    []string
	omdbKeyMissing bool
}

// NewServer wires the REST server from config and services.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	ws *services.WatchedService, finder MovieFinder) *Server {
	return &Server{
		address:        cfg.Address,
		logger:         l.With("module", "rest_server"),
		userService:    us,
		watchedService: ws,
		finder:         finder,
		jwtSecret:      []byte(cfg.SecretKey),
		corsOrigins:    cfg.CORSOrigins,
		omdbKeyMissing: cfg.OMDbAPIKey == "",
	}
}

// Router assembles the chi router with CORS, recovery and request logging.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Get("/movie/{id}", s.handleMovieDetail)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(s.jwtSecret))
			r.Get("/watched", s.handleWatchedList)
			r.Post("/watched", s.handleWatchedAdd)
			r.Delete("/watched/{id}", s.handleWatchedRemove)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
