package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/autolearn/kotoba/internal/auth"
	"github.com/autolearn/kotoba/internal/catalog"
)

// NewRouter creates a chi router with all API routes mounted. Every response
// carries CORS headers; unmatched routes and methods share one 404 handler.
func NewRouter(svc *catalog.Service, gate *auth.Gate) chi.Router {
	h := NewHandler(svc, gate)

	r := chi.NewRouter()
	r.Use(CORSMiddleware)

	r.Get("/", h.Root)

	// Authentication.
	r.Post("/auth/login", h.Login)
	r.Get("/auth/check", h.Check)
	r.Post("/auth/logout", h.Logout)

	// Word catalog (session-gated in the service layer).
	r.Get("/words", h.Words)
	r.Post("/upload", h.Upload)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
