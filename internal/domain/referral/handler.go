package referral

import (
	"net/http"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me handles GET /referrals/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		ledger.WriteError(r.Context(), w, "referrals.me", err)
		return
	}
	response.OK(w, stats)
}
