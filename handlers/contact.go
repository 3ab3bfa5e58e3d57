package handlers

import (
	"log/slog"
	"net/http"

	"ballotgate/coordinator"
	"ballotgate/middleware"
	"ballotgate/models"
)

type ContactHandler struct {
	coord *coordinator.Coordinator
}

func NewContactHandler(coord *coordinator.Coordinator) *ContactHandler {
	return &ContactHandler{coord: coord}
}

// Contact handles POST /contact
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and message are required")
		return
	}

	if err := h.coord.Contact(req.Email, req.Message); err != nil {
		slog.Error("contact relay failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable,
			"Could not deliver your message. Please try again later.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Thanks, your message was sent.",
	})
}
