package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/firesalehomes/firesale/internal/repository"
	"github.com/firesalehomes/firesale/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and repository errors onto the API's
// error taxonomy. Anything unrecognized is a 500 with a generic message;
// the detail stays in the server log.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyUnlocked),
		errors.Is(err, service.ErrExclusivelyLocked),
		errors.Is(err, service.ErrInvalidResetToken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrListingNotFound),
		errors.Is(err, repository.ErrInvestorNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(v)
}
