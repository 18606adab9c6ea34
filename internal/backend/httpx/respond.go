package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "factoria/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps the error taxonomy onto HTTP statuses and the
// structured payload consumed by the client gateway.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteJSON(w, logger, http.StatusBadRequest, errorResponse{
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, logger, http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: nfe.Message,
		})
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(w, logger, http.StatusConflict, errorResponse{
			Error:   "CONFLICT",
			Message: ce.Message,
		})
		return
	}
	logger.Error("request failed", zap.Error(err))
	WriteJSON(w, logger, http.StatusInternalServerError, errorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
	})
}

func WriteInvalidBody(w http.ResponseWriter, logger *zap.Logger) {
	WriteJSON(w, logger, http.StatusBadRequest, errorResponse{
		Error:   "VALIDATION_ERROR",
		Message: "invalid JSON body",
		Details: []apperrors.ValidationDetail{{
			Field:   "body",
			Message: "request body must be valid JSON",
		}},
	})
}

// IntParam parses a chi URL parameter as a positive integer.
func IntParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return value, nil
}
