package streak

import (
	"net/http"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/response"
)

// TimezoneHeader carries the caller's IANA zone for "today"
const TimezoneHeader = "X-Timezone"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Status handles GET /streak
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	today := h.service.Today(r.Header.Get(TimezoneHeader))

	status, err := h.service.Status(r.Context(), middleware.GetUserID(r.Context()), today)
	if err != nil {
		ledger.WriteError(r.Context(), w, "streak.status", err)
		return
	}
	response.OK(w, status)
}

// Claim handles POST /streak/claim
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	today := h.service.Today(r.Header.Get(TimezoneHeader))

	result, err := h.service.Claim(r.Context(), middleware.GetUserID(r.Context()), today)
	if err != nil {
		ledger.WriteError(r.Context(), w, "streak.claim", err)
		return
	}
	response.OK(w, result)
}
