// Upcheck - Account, Session, and Uptime Check API
// Copyright 2026 Upcheck Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/upcheckhq/upcheck

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/upcheckhq/upcheck/internal/middleware"
)

// rateLimitByIP builds a per-client-IP limiter whose 429 answers the
// same JSON error envelope as every other response, instead of the
// limiter's plain-text default.
func rateLimitByIP(requestLimit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requestLimit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, codeRateLimited, "too many requests, slow down", nil)
		}),
	)
}

// Router wires the API handlers to their routes.
type Router struct {
	handler *Handler
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup configures all HTTP routes.
//
// Paths are matched after trimming and lowercasing, so /Ping/ and /ping
// hit the same handler. Unknown paths answer a JSON 404 and known paths
// with the wrong method a JSON 405, keeping the error surface uniform
// with the handlers themselves.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.NormalizePath)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "token"},
		MaxAge:         300,
	}))
	r.Use(middleware.PrometheusMetrics)
	r.Use(rateLimitByIP(router.handler.cfg.Server.RateLimitReqs, router.handler.cfg.Server.RateLimitWindow))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, codeNotFound, "the requested resource does not exist", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed for this resource", nil)
	})

	r.Get("/ping", router.handler.Ping)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", router.handler.UserCreate)
		r.Get("/", router.handler.UserRead)
		r.Put("/", router.handler.UserUpdate)
		r.Delete("/", router.handler.UserDelete)
	})

	r.Route("/tokens", func(r chi.Router) {
		// Token creation is the credential-guessing surface; rate limit
		// it harder than the rest of the API.
		r.With(rateLimitByIP(10, time.Minute)).Post("/", router.handler.TokenCreate)
		r.Get("/", router.handler.TokenRead)
		r.Put("/", router.handler.TokenUpdate)
		r.Delete("/", router.handler.TokenDelete)
	})

	r.Route("/checks", func(r chi.Router) {
		r.Post("/", router.handler.CheckCreate)
		r.Get("/", router.handler.CheckRead)
		r.Put("/", router.handler.CheckUpdate)
		r.Delete("/", router.handler.CheckDelete)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
