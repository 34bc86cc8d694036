package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crew-app/crew/internal/core/ports"
)

// NewHandler wires all routes. Everything under /api and /groups, plus
// logout-all, requires a valid bearer access token.
func NewHandler(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	groupHandler *GroupHandler,
	healthHandler *HealthHandler,
	verifier ports.AccessTokenVerifier,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	requireAuth := RequireAuth(verifier)

	r.Get("/health", healthHandler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout-all", authHandler.LogoutAll)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", userHandler.GetMe)
	})

	r.Route("/groups", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", groupHandler.Create)
		r.Post("/join", groupHandler.Join)
		r.Get("/", groupHandler.List)
		r.Post("/{groupID}/leave", groupHandler.Leave)
		r.Delete("/{groupID}", groupHandler.Delete)
		r.Delete("/{groupID}/members/{userID}", groupHandler.RemoveMember)
	})

	return r
}
