package errorhandler

import (
	"context"
	"net/http"

	"github.com/flowva/rewards-api/internal/pkg/logger"
	"github.com/flowva/rewards-api/internal/pkg/response"
)

// HandleError logs the failure with the request-scoped logger and writes an error envelope.
// 5xx responses never echo err back to the client.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromContext(ctx).Error()
	}

	event.
		Str("error_code", code).
		Int("status_code", status).
		Err(err).
		Msg(message)

	response.Error(w, status, code, message)
}

// Internal logs err and responds with the generic 500 envelope.
func Internal(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Request failed")

	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Debug().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
