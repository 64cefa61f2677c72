// Package api provides the HTTP handlers and response utilities for the
// recommendation service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/uninest/recommender/internal/middleware"
)

// Common error codes used throughout the API.
const (
	// ErrCodeBadRequest indicates a malformed request.
	ErrCodeBadRequest = "bad_request"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeInternal indicates an internal server error. All unexpected
	// engine and store failures collapse to this single category.
	ErrCodeInternal = "internal_error"
)

// ErrorResponse is the standard error envelope:
// {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response and tags the request
// log with the error code.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	middleware.SetResponseErrorCode(w, code)

	data, err := json.Marshal(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to marshal error response", "error", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
