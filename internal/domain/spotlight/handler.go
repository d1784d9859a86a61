package spotlight

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/errorhandler"
	"github.com/flowva/rewards-api/internal/pkg/response"
	"github.com/flowva/rewards-api/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Featured handles GET /spotlight
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	featured, err := h.service.Featured(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			response.NotFound(w, "No spotlight tool is featured")
			return
		}
		ledger.WriteError(r.Context(), w, "spotlight.featured", err)
		return
	}
	response.OK(w, featured)
}

// Claim handles POST /spotlight/claim
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := h.service.Claim(r.Context(), middleware.GetUserID(r.Context()), req.ToolID)
	if err != nil {
		ledger.WriteError(r.Context(), w, "spotlight.claim", err)
		return
	}
	response.OK(w, result)
}

// Create handles POST /admin/spotlight
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateToolRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	tool, err := h.service.Create(r.Context(), &req)
	if err != nil {
		ledger.WriteError(r.Context(), w, "spotlight.create", err)
		return
	}
	response.Created(w, tool)
}

// Feature handles POST /admin/spotlight/{id}/feature
func (h *Handler) Feature(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid spotlight ID")
		return
	}

	tool, err := h.service.Feature(r.Context(), id)
	if err != nil {
		ledger.WriteError(r.Context(), w, "spotlight.feature", err)
		return
	}
	response.OK(w, tool)
}
