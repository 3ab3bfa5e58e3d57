/*
Package router defines HTTP routes for the election API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(coord, cfg)

# Endpoints

Health:

	GET /health

Registration and voting (public):

	POST /register - Register an eligible voter, credentials mailed
	POST /login    - Sign in, binds a session to the caller's address
	POST /vote     - Cast the one vote a credential is good for
	POST /logout   - Release the session

Results:

	GET /results - Current tally

Admin (requires X-Admin-Key):

	POST /admin/reconcile - Compare roster voted count against tally total

Contact:

	POST /contact - Relay a message to the admin

# Handler Initialization

The router creates handler instances with dependency injection:

	registrationHandler := handlers.NewRegistrationHandler(coord)
	votingHandler := handlers.NewVotingHandler(coord)
	resultsHandler := handlers.NewResultsHandler(coord, cfg.AdminKey)
	contactHandler := handlers.NewContactHandler(coord)

All handlers share the one coordinator instance.
*/
package router
