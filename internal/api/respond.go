package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"trustvault/internal/auth"
	"trustvault/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP status codes. Unrecognized
// errors become opaque 500s so internals never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), map[string]string{"error": userMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidChoice),
		errors.Is(err, models.ErrInvalidKind),
		errors.Is(err, models.ErrInvalidGroupName),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, models.ErrNotAMember),
		errors.Is(err, models.ErrNotOwner),
		errors.Is(err, models.ErrInviteNotForUser):
		return http.StatusForbidden

	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrGroupNotFound),
		errors.Is(err, models.ErrProposalNotFound),
		errors.Is(err, models.ErrInviteNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrProposalNotPending),
		errors.Is(err, models.ErrProposalNotApproved),
		errors.Is(err, models.ErrAlreadyExecuted),
		errors.Is(err, models.ErrAlreadyVoted),
		errors.Is(err, models.ErrAlreadyMember),
		errors.Is(err, models.ErrOwnerRemoval),
		errors.Is(err, models.ErrInviteNotPending),
		errors.Is(err, models.ErrEmailExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func userMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
