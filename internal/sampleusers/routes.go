package sampleusers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, gate func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(gate)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/names", h.Names)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
