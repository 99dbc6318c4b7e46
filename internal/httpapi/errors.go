package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"audiod/internal/engine"
	"audiod/internal/manager"
	"audiod/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case engine.IsTriggerNotFound(err), engine.IsObjectNotFound(err),
		engine.IsEventNotFound(err), manager.IsBackendNotFound(err):
		return http.StatusNotFound
	case manager.IsDependencyUnavailable(err),
		errors.Is(err, engine.ErrNoBackend), errors.Is(err, engine.ErrStopped):
		return http.StatusServiceUnavailable
	case manager.IsConstructFailed(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger().Error().Err(err).Msg("encode response")
	}
}
