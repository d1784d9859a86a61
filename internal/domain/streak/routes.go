package streak

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns streak router. limit throttles the claim endpoint.
func (h *Handler) Routes(authMiddleware, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.Status)
	r.With(limit).Post("/claim", h.Claim)
	return r
}
