package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"isp-billing/internal/api/handler/dto"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"net/http"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// classifyError maps an error to the status, message and field shown to the
// administrator.
func classifyError(err error) (int, string, string) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, customer.ErrDeleteNotConfirmed):
		status, message = http.StatusConflict, "Deletion must be confirmed first."
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrPermission):
		status, message = http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, "The resource already exists."
	case errors.Is(err, apperrors.ErrConnectivity):
		status, message = http.StatusServiceUnavailable, "The customer database is unreachable. Please try again later."
	case errors.As(err, &appErr):
		message = appErr.Message
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}
	return status, message, field
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := classifyError(err)
	respondJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	})
}
