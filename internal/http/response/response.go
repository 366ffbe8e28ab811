// Package response writes JSON bodies for plain chi handlers and middleware
// that run outside the huma operation pipeline.
package response

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
)

// ErrorBody matches the error shape produced by the API error handler.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("encode JSON response", "error", err)
	}
}

// Error writes an ErrorBody.
func Error(w http.ResponseWriter, status int, code domainerrors.Code, message string, logger *slog.Logger) {
	JSON(w, status, ErrorBody{Code: string(code), Message: message}, logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, "RATE_LIMITED", message, logger)
}
