package spotlight

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns spotlight router. limit throttles the claim endpoint.
func (h *Handler) Routes(authMiddleware, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.Featured)
	r.With(limit).Post("/claim", h.Claim)
	return r
}

// AdminRoutes returns spotlight management routes; callers mount them behind RequireAdmin
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Post("/{id}/feature", h.Feature)
	return r
}
