package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ballotgate/auth"
	"ballotgate/blobstore"
	"ballotgate/coordinator"
	"ballotgate/middleware"
	"ballotgate/session"
	"ballotgate/store"
)

// invalidLogin is the one message for every credential failure: unknown
// email and wrong password must be indistinguishable to the caller.
const invalidLogin = "Invalid email or password."

// writeDomainError maps coordinator and session errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredential):
		middleware.ErrorResponse(w, http.StatusUnauthorized, invalidLogin)
	case errors.Is(err, session.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict,
			"This account has already been used for voting. Please contact the admin in case you didn't.")
	case errors.Is(err, session.ErrActiveElsewhere):
		middleware.ErrorResponse(w, http.StatusConflict,
			"This account is already signed in from another device.")
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrOriginMismatch):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired. Please sign in again.")
	case errors.Is(err, coordinator.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is not open at this time.")
	case errors.Is(err, coordinator.ErrNotEligible):
		middleware.ErrorResponse(w, http.StatusForbidden, "You are not eligible to register.")
	case errors.Is(err, coordinator.ErrDuplicateRegistration):
		middleware.ErrorResponse(w, http.StatusConflict, "This name is already registered.")
	case errors.Is(err, coordinator.ErrInvalidChoice):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice.")
	case errors.Is(err, auth.ErrEmptyName), errors.Is(err, auth.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Names may contain only letters and digits.")
	case errors.Is(err, store.ErrCorruptData):
		slog.Error("corrupt election document", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	case errors.Is(err, blobstore.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable,
			"Temporarily unavailable. Please try again.")
	default:
		slog.Error("unhandled domain error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
