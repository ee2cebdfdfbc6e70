package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the authentication endpoints. gate is the session
// middleware; throttle guards the credential endpoints.
func RegisterRoutes(r chi.Router, h *Handler, gate, throttle func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(throttle)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Post("/logout", h.Logout)
		r.Get("/current-user", h.CurrentUser)
	})
}
