// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/middleware"
)

// Router assembles the Chi route tree around a Handler.
type Router struct {
	handler  *Handler
	security config.SecurityConfig
}

// NewRouter builds the route tree factory.
func NewRouter(handler *Handler, security config.SecurityConfig) *Router {
	return &Router{handler: handler, security: security}
}

// Setup returns the complete HTTP handler: global middleware, health
// and metrics endpoints, and the versioned API routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Health endpoints get a permissive limit so monitoring never trips
	// the API limit.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.rateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/archetypes", rt.handler.Archetypes)
		r.Get("/classify/questions", rt.handler.Questions)
		r.Post("/classify", rt.handler.Classify)

		r.Route("/match/{viewerID}", func(r chi.Router) {
			r.Get("/", rt.handler.Batch)
			r.Get("/candidates", rt.handler.Candidates)
			r.Get("/{targetID}", rt.handler.Match)
		})

		r.Put("/users/{userID}/schedule", rt.handler.UpdateSchedule)
	})

	return r
}

// rateLimit builds the per-IP API limiter, or a no-op when disabled.
func (rt *Router) rateLimit() func(http.Handler) http.Handler {
	if rt.security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	reqs := rt.security.RateLimitReqs
	if reqs <= 0 {
		reqs = 100
	}
	window := rt.security.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(reqs, window, httprate.WithKeyFuncs(httprate.KeyByIP))
}
