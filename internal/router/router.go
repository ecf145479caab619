// Package router sets up all HTTP routes and middleware chains for the
// blog API. Read endpoints are public; the admin subtree is gated by
// the session middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/handlers"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/middleware"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/session"
)

// New creates and returns the configured Chi router with all
// middleware and route groups wired up.
func New(sessions session.Store, auth *handlers.Auth, public *handlers.Public, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessions))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Authentication.
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)
		r.Get("/auth/me", auth.Me)

		// Public read endpoints.
		r.Get("/posts", public.ListPosts)
		r.Get("/posts/popular", public.PopularPosts)
		r.Get("/posts/{slug}", public.PostBySlug)
		r.Get("/categories", public.ListCategories)

		// Admin mutations require an authenticated session.
		r.Route("/admin/posts", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", admin.CreatePost)
			r.Put("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
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
