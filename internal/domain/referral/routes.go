package referral

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns referrals router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/me", h.Me)
	return r
}
