package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/airstay/airstay-api/internal/auth"
	"github.com/airstay/airstay-api/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer sentinels onto the HTTP taxonomy.
// Anything unrecognized is a store failure; its details stay out of the body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, auth.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, auth.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not the owner")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusUnprocessableEntity, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
