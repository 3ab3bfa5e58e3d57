package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"ballotgate/coordinator"
	"ballotgate/middleware"
	"ballotgate/models"
)

type ResultsHandler struct {
	coord    *coordinator.Coordinator
	adminKey string
}

func NewResultsHandler(coord *coordinator.Coordinator, adminKey string) *ResultsHandler {
	return &ResultsHandler{coord: coord, adminKey: adminKey}
}

// GetResults handles GET /results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tally, err := h.coord.Results(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Counts: tally.Counts,
		Total:  tally.Total(),
	})
}

// Reconcile handles POST /admin/reconcile
// Requires the X-Admin-Key header; compares the roster's voted count
// against the tally total.
func (h *ResultsHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-Admin-Key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	voted, counted, err := h.coord.ReconcileTally(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if voted != counted {
		slog.Warn("tally out of step with roster", "voted", voted, "counted", counted)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReconcileResponse{
		Voted:      voted,
		Counted:    counted,
		Consistent: voted == counted,
	})
}
