package api

import (
	"net/http"

	"github.com/Sandanu06/citf-backend-v1/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupAPIRoutes mounts the JSON API under /api
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, maxBodyBytes int64, authLimit func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(limitBody(maxBodyBytes))

		r.Get("/health", handlers.healthHandler.health())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{id}", handlers.projectHandler.getProject())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{id}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())

		// Scroll Image Handler endpoints
		r.Post("/scroll-images", handlers.scrollImageHandler.createScrollImages())
		r.Get("/scroll-images", handlers.scrollImageHandler.getAllScrollImages())
		r.Delete("/scroll-images/{id}", handlers.scrollImageHandler.deleteScrollImage())

		// Video Handler endpoints
		r.Post("/videos", handlers.videoHandler.createVideo())
		r.Get("/videos", handlers.videoHandler.getAllVideos())
		r.Delete("/videos/{id}", handlers.videoHandler.deleteVideo())

		// Auth Handler endpoints
		r.With(authLimit).Post("/register", handlers.authHandler.register())
		r.With(authLimit).Post("/login", handlers.authHandler.login())
	})
}

// setupStaticRoutes serves stored uploads and the metrics endpoint
func setupStaticRoutes(r chi.Router, files fileDeps) {
	r.Handle(files.route+"/*", storage.FileServer(files.store, files.route))
	r.Handle("/metrics", promhttp.Handler())
}
