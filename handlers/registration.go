package handlers

import (
	"log/slog"
	"net/http"

	"ballotgate/coordinator"
	"ballotgate/middleware"
	"ballotgate/models"
)

type RegistrationHandler struct {
	coord *coordinator.Coordinator
}

func NewRegistrationHandler(coord *coordinator.Coordinator) *RegistrationHandler {
	return &RegistrationHandler{coord: coord}
}

// Register handles POST /register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	identity, err := h.coord.Register(r.Context(), req.FirstName, req.LastName, req.AltCohort)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("voter registered", "identity", identity)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Identity: identity,
		Message:  "Registered. Your voting credentials were sent to your institutional inbox.",
	})
}
