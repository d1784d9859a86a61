package ledger

import (
	"context"
	"errors"
	"net/http"

	"github.com/flowva/rewards-api/internal/pkg/errorhandler"
	"github.com/flowva/rewards-api/internal/pkg/response"
)

// WriteError maps the ledger error taxonomy onto the response envelope.
func WriteError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		response.Unauthorized(w, "Authentication required")
	case errors.Is(err, ErrAlreadyClaimed):
		errorhandler.HandleError(ctx, w, http.StatusConflict, "ALREADY_CLAIMED", "Already claimed", err)
	case errors.Is(err, ErrInsufficientPoints):
		errorhandler.HandleError(ctx, w, http.StatusConflict, "INSUFFICIENT_POINTS", "Not enough points", err)
	case errors.Is(err, ErrNotRedeemable):
		errorhandler.HandleError(ctx, w, http.StatusConflict, "NOT_REDEEMABLE", "Reward is not available yet", err)
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Not found")
	default:
		errorhandler.Internal(ctx, w, operation, err)
	}
}
