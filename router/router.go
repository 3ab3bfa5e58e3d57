package router

import (
	"net/http"

	"ballotgate/cliparse"
	"ballotgate/coordinator"
	"ballotgate/handlers"
	"ballotgate/middleware"
)

func NewRouter(coord *coordinator.Coordinator, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(coord)
	votingHandler := handlers.NewVotingHandler(coord)
	resultsHandler := handlers.NewResultsHandler(coord, cfg.AdminKey)
	contactHandler := handlers.NewContactHandler(coord)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registration
	mux.HandleFunc("POST /register", middleware.WithLogging(registrationHandler.Register))

	// Voting operations
	mux.HandleFunc("POST /login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("POST /logout", middleware.WithLogging(votingHandler.Logout))

	// Results and admin
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("POST /admin/reconcile", middleware.WithLogging(resultsHandler.Reconcile))

	// Contact relay
	mux.HandleFunc("POST /contact", middleware.WithLogging(contactHandler.Contact))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotgate API v1"))
	})

	return mux
}
