package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgCardNotFoundError    = "Card not found"
	ErrMsgPurchaseNotFoundErr  = "Purchase not found"
	ErrMsgCatalogExhaustedErr  = "No cards left to issue"
	ErrMsgAlreadyIssuedError   = "Card has already been issued"
	ErrMsgExternalCallError    = "Upstream service unavailable. Please try again later."
	ErrMsgServerErrorError     = "Server error occurred. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses without leaking internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusBadRequest, ErrMsgCardNotFoundError
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return http.StatusNotFound, ErrMsgPurchaseNotFoundErr
	case errors.Is(err, domain.ErrCatalogExhausted):
		return http.StatusConflict, ErrMsgCatalogExhaustedErr
	case errors.Is(err, domain.ErrAlreadyIssued):
		return http.StatusConflict, ErrMsgAlreadyIssuedError
	case errors.Is(err, domain.ErrExternalCall):
		return http.StatusBadGateway, ErrMsgExternalCallError
	default:
		return http.StatusInternalServerError, ErrMsgServerErrorError
	}
}
