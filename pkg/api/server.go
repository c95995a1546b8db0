// Package api exposes the fixed-width file operations over a small REST
// surface: read a field, overwrite a field, append a transaction.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(editor FileEditor, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(editor, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting fixedfile REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, server.Router())
}

// Router builds the chi router for the server
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(apiKeyMiddleware(s.config.APIKey))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Get("/records/{type}/{field}", s.metrics.InstrumentHandler("GET", "/api/v1/records/{type}/{field}", s.handleGetField))
		r.Put("/records/{type}/{field}", s.metrics.InstrumentHandler("PUT", "/api/v1/records/{type}/{field}", s.handleSetField))

		r.Post("/transactions", s.metrics.InstrumentHandler("POST", "/api/v1/transactions", s.handleAddTransaction))
	})

	return r
}
