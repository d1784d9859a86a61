package ledger

import (
	"net/http"
	"strconv"

	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/response"
)

// Handler serves the points endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance handles GET /points/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Balance(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(r.Context(), w, "points.balance", err)
		return
	}
	response.OK(w, summary)
}

// Transactions handles GET /points/transactions
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	p := Pagination{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}.Normalize()

	txs, total, err := h.service.History(r.Context(), middleware.GetUserID(r.Context()), p)
	if err != nil {
		WriteError(r.Context(), w, "points.transactions", err)
		return
	}

	response.WithMeta(w, txs, response.Meta{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasNext: p.Offset+len(txs) < total,
	})
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
