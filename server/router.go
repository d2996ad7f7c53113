// Package server exposes the message store over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/milk9111/msgfall/msgstore"
)

const messagesPath = "/api/messages"

// NewRouter creates and configures the HTTP router. staticDir is served at /
// when it is not empty.
func NewRouter(logger zerolog.Logger, store msgstore.Store, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logger(logger))
	r.Use(chimw.Recoverer)

	// The client may be served from anywhere, including a browser build.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := NewHandler(store, logger)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)
	r.HandleFunc(messagesPath, h.Messages)

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
