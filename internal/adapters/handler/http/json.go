package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crew-app/crew/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError maps the typed domain errors onto HTTP statuses.
// Anything untyped is an internal error: it is logged for operators and
// surfaced with a generic body so no internals leak to clients.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError
	var authErr *domain.AuthenticationError
	var groupErr *domain.GroupError

	switch {
	case errors.As(err, &validationErr):
		writeMessage(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &conflictErr):
		writeMessage(w, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &authErr):
		writeMessage(w, http.StatusUnauthorized, authErr.Message)
	case errors.As(err, &groupErr):
		writeMessage(w, http.StatusBadRequest, groupErr.Message)
	default:
		logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
