package reward

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the user-facing rewards router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Get("/redemptions", h.Redemptions)
	r.Post("/{id}/redeem", h.Redeem)
	return r
}

// AdminRoutes returns catalog management routes; callers mount them behind RequireAdmin
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Put("/{id}/icon", h.UploadIcon)
	return r
}
