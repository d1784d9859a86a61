package reward

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/errorhandler"
	"github.com/flowva/rewards-api/internal/pkg/response"
	"github.com/flowva/rewards-api/internal/pkg/storage"
	"github.com/flowva/rewards-api/internal/pkg/validator"
)

// maxIconFormSize leaves room for multipart framing around the icon
const maxIconFormSize = storage.MaxIconSize + 1<<20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /rewards?filter=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := CatalogQuery{Filter: r.URL.Query().Get("filter")}
	if errs := validator.Validate(&q); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	catalog, err := h.service.Catalog(r.Context(), middleware.GetUserID(r.Context()), Filter(q.Filter))
	if err != nil {
		ledger.WriteError(r.Context(), w, "rewards.list", err)
		return
	}
	response.OK(w, catalog)
}

// Redemptions handles GET /rewards/redemptions
func (h *Handler) Redemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := h.service.Redemptions(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		ledger.WriteError(r.Context(), w, "rewards.redemptions", err)
		return
	}
	response.OK(w, redemptions)
}

// Redeem handles POST /rewards/{id}/redeem
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	rewardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reward ID")
		return
	}

	result, err := h.service.Redeem(r.Context(), middleware.GetUserID(r.Context()), rewardID)
	if err != nil {
		ledger.WriteError(r.Context(), w, "rewards.redeem", err)
		return
	}
	response.Created(w, result)
}

// Create handles POST /admin/rewards
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRewardRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeAdminError(w, r, "rewards.create", err)
		return
	}
	response.Created(w, created)
}

// UpdateStatus handles PATCH /admin/rewards/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reward ID")
		return
	}

	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.service.SetStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.writeAdminError(w, r, "rewards.status", err)
		return
	}
	response.OK(w, updated)
}

// UploadIcon handles PUT /admin/rewards/{id}/icon
// Multipart form: icon
func (h *Handler) UploadIcon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reward ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxIconFormSize)
	if err := r.ParseMultipartForm(maxIconFormSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	file, _, err := r.FormFile("icon")
	if err != nil {
		response.BadRequest(w, "No icon provided")
		return
	}
	defer file.Close()

	updated, err := h.service.UploadIcon(r.Context(), id, file)
	if err != nil {
		h.writeAdminError(w, r, "rewards.icon", err)
		return
	}
	response.OK(w, updated)
}

func (h *Handler) writeAdminError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "Invalid status")
	case errors.Is(err, ErrStorageDisabled):
		errorhandler.HandleError(r.Context(), w, http.StatusServiceUnavailable, "STORAGE_DISABLED", "Icon storage is not configured", err)
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	case errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, ErrInvalidIcon):
		response.BadRequest(w, "File type not allowed")
	default:
		ledger.WriteError(r.Context(), w, op, err)
	}
}
