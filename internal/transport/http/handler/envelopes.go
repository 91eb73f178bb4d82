package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wardro8e/api/internal/application/auth"
	"github.com/wardro8e/api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login/refresh responses.
type AuthEnvelope struct {
	Message      string         `json:"message,omitempty"`
	AccessToken  string         `json:"access_token,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	User         *auth.Identity `json:"user,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// VerifyEnvelope wraps the signup-verification response.
type VerifyEnvelope struct {
	Message string        `json:"message,omitempty"`
	Brand   *domain.Brand `json:"brand,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeServiceError maps domain sentinel errors to HTTP statuses. Weak
// password failures carry the individual rule messages in an errors array.
func writeServiceError(w http.ResponseWriter, err error) {
	var weak *auth.WeakPasswordError
	if errors.As(err, &weak) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "password does not meet requirements",
			"errors": weak.Errors,
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
