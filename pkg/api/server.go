// Package api exposes SifDB's tables over a REST surface: schema
// listing, record insert/lookup/delete, scans, and filtered queries.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/query"
	"github.com/ssargent/sifdb/pkg/store"
)

// StartServer starts the HTTP server with all routes configured and
// blocks until it fails.
func StartServer(s *store.TableStore, engine *query.SelectEngine, config ServerConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := NewMetrics()
	server := NewServer(s, engine, config, metrics, logger)
	r := Router(server, metrics)

	addr := fmt.Sprintf(":%d", config.Port)
	logger.Info("starting REST API server",
		zap.String("addr", addr),
		zap.String("metrics", fmt.Sprintf("http://localhost:%d/metrics", config.Port)))
	return http.ListenAndServe(addr, r)
}

// Router builds the chi router for a server. Split from StartServer so
// tests can drive the full middleware stack without a listener.
func Router(server *Server, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Schema
		r.Get("/tables", metrics.InstrumentHandler("GET", "/api/v1/tables", server.handleListTables))

		// Record operations
		r.Post("/tables/{table}/records", metrics.InstrumentHandler("POST", "/api/v1/tables/{table}/records", server.handleInsert))
		r.Get("/tables/{table}/records", metrics.InstrumentHandler("GET", "/api/v1/tables/{table}/records", server.handleScan))
		r.Post("/tables/{table}/lookup", metrics.InstrumentHandler("POST", "/api/v1/tables/{table}/lookup", server.handleLookup))
		r.Post("/tables/{table}/query", metrics.InstrumentHandler("POST", "/api/v1/tables/{table}/query", server.handleQuery))
		r.Delete("/tables/{table}/records", metrics.InstrumentHandler("DELETE", "/api/v1/tables/{table}/records", server.handleDelete))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}
