// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// digest API. Routes are organized into a public group and an
// authenticated admin group.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"aidigest/internal/handlers"
	"aidigest/internal/middleware"
)

// Subscribe is abuse-prone, so it gets a tighter per-IP limit than the
// rest of the public surface.
const (
	publicRateLimit    = 120
	subscribeRateLimit = 5
	rateLimitWindow    = time.Minute
)

// New creates the configured Chi router with all middleware and route
// groups wired up.
func New(public *handlers.Public, admin *handlers.Admin, auth *middleware.AdminAuth) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	publicLimiter := middleware.NewRateLimiter(publicRateLimit, rateLimitWindow)
	subscribeLimiter := middleware.NewRateLimiter(subscribeRateLimit, rateLimitWindow)

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware)

			r.Get("/health", public.Health)
			r.Get("/blogs", public.ListBlogs)
			r.Get("/blogs/{id}", public.GetBlog)
			r.Get("/agents", public.ListAgents)
			r.Get("/pages/{key}", public.GetPage)
		})

		r.Group(func(r chi.Router) {
			r.Use(subscribeLimiter.Middleware)
			r.Post("/subscribe", public.Subscribe)
		})

		// Admin surface, bearer-token authenticated.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/schedule", admin.GetSchedule)
			r.Put("/schedule", admin.UpdateSchedule)

			r.Post("/generate", admin.Generate)
			r.Post("/generate/all", admin.GenerateAll)
			r.Get("/generation-logs", admin.ListGenerationLogs)

			r.Post("/blogs", admin.CreateBlog)
			r.Delete("/blogs/{id}", admin.DeleteBlog)

			r.Post("/agents", admin.CreateAgent)
			r.Delete("/agents/{id}", admin.DeleteAgent)

			r.Put("/pages/{key}", admin.SetPage)

			r.Get("/providers", admin.ListProviders)
			r.Put("/providers", admin.SetProvider)
		})
	})

	return r
}
