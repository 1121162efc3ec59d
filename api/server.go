package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Sandanu06/citf-backend-v1/config"
	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/services"
	"github.com/Sandanu06/citf-backend-v1/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// DefaultAcceptedOrigins are the site origins allowed when ACCEPTED_ORIGINS is unset.
var DefaultAcceptedOrigins = []string{
	"http://localhost",
	"http://127.0.0.1:5500",
	"https://citf-back.coolify.teczos.cloud",
}

const defaultMaxUploadBytes = 50 << 20

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, store storage.FileStore, c map[string]string) (Server, error) {
	if store == nil {
		return Server{}, fmt.Errorf("file store is required")
	}

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(database, withConfig(c), withStartupTime(startupTime), withFileStore(store))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       readTimeout, // Timeout for reading the entire request
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout, // Timeout for writing the response
		IdleTimeout:       idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	store       storage.FileStore
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withFileStore(store storage.FileStore) func(*router) {
	return func(r *router) {
		r.store = store
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	// Apply CORS middleware
	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS", DefaultAcceptedOrigins)
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	maxBodyBytes := config.GetInt64(router.config, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	hasher := services.NewPasswordHasher(config.GetInt(router.config, "BCRYPT_COST", 10))
	files := newFileDeps(router.store, config.GetString(router.config, "UPLOAD_ROUTE", "/uploads"))

	// Initialize all handlers
	handlers := initializeHandlers(database, files, hasher, maxBodyBytes, router.startupTime)

	// Setup all route types
	setupAPIRoutes(chiRouter, handlers, maxBodyBytes, authRateLimit(config.GetInt(router.config, "AUTH_RATE_LIMIT", 20)))
	setupStaticRoutes(chiRouter, files)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChannel <- err
	}
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// Uptime is the time since the server was constructed.
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}
