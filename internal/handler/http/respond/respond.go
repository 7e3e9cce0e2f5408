// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devflow/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// fieldError is the wire form of one validation failure.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors writes the structured field-failure list the API returns
// for bad request bodies.
func ValidationErrors(w http.ResponseWriter, errs entity.ValidationErrors) {
	out := make([]fieldError, len(errs))
	for i, e := range errs {
		out[i] = fieldError{Field: e.Field, Message: e.Message}
	}
	JSON(w, http.StatusBadRequest, map[string]any{"errors": out})
}

// safeSubstrings marks error messages that originate from input validation
// and are safe to echo back to the client.
var safeSubstrings = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot",
	"not supported",
	"not the",
}

// SafeError sanitizes error messages before returning them to users.
// Validation-style errors are returned as-is; anything else (driver errors,
// store errors) becomes a generic message with the detail logged.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		ValidationErrors(w, verrs)
		return
	}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		ValidationErrors(w, entity.ValidationErrors{verr})
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeSubstrings {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
