// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// discussion API. Every /api route runs behind the identity middleware;
// health and metrics stay open.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lexforum/internal/handlers"
	"lexforum/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. A nil limiter disables rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. Identity loads before
	// logging so log lines carry the caller id.
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadCaller)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics — no identity required.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/forums", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Use(middleware.RequireCaller)

		r.Get("/", api.ForumsList)
		r.Post("/", api.ForumCreate)

		r.Route("/{forumID}", func(r chi.Router) {
			r.Get("/", api.ForumGet)
			r.Put("/", api.ForumUpdate)
			r.Delete("/", api.ForumDelete)
			r.Get("/stats", api.ForumStats)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", api.CategoriesList)
				r.Post("/", api.CategoryCreate)
				r.Get("/{categoryID}", api.CategoryGet)
				r.Put("/{categoryID}", api.CategoryUpdate)
				r.Delete("/{categoryID}", api.CategoryDelete)
			})

			r.Route("/threads", func(r chi.Router) {
				r.Get("/", api.ThreadsList)
				r.Post("/", api.ThreadCreate)

				r.Route("/{threadID}", func(r chi.Router) {
					r.Get("/", api.ThreadGet)
					r.Put("/", api.ThreadUpdate)
					r.Delete("/", api.ThreadDelete)

					r.Route("/posts", func(r chi.Router) {
						r.Get("/", api.PostsList)
						r.Post("/", api.PostCreate)

						r.Route("/{postID}", func(r chi.Router) {
							r.Get("/", api.PostGet)
							r.Put("/", api.PostUpdate)
							r.Delete("/", api.PostDelete)

							r.Route("/reactions", func(r chi.Router) {
								r.Get("/", api.ReactionsList)
								r.Post("/", api.ReactionAdd)
								r.Get("/counts", api.ReactionCounts)
								r.Delete("/{reactionType}", api.ReactionRemove)
							})
						})
					})
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
