/*
Package handlers contains HTTP request handlers for the election API.

# Handler Types

Each handler is a struct wrapping the coordinator:

  - RegistrationHandler: eligibility-checked voter registration
  - VotingHandler: login, vote submission, logout
  - ResultsHandler: tally retrieval and admin reconciliation
  - ContactHandler: visitor-to-admin mail relay

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(coord)

# Voting Flow

	POST /register → Register (credentials mailed, never returned)
	POST /login    → Login (binds a session to the caller's address)
	POST /vote     → Vote (one per credential, ever)
	POST /logout   → Logout

# Error Mapping

writeDomainError translates coordinator and session errors to statuses:

	invalid credential        → 401 (identical for unknown email / wrong password)
	already voted             → 409
	active elsewhere          → 409
	no session / wrong origin → 401
	window closed             → 403
	not eligible              → 403
	invalid choice            → 400
	storage unavailable       → 503

A partial commit, where the roster flip landed but the tally update is
still pending, is reported to the voter as success. The vote is durable;
the derived count is repaired by reconciliation.

# Admin Operations

	GET /results          → current tally (public)
	POST /admin/reconcile → roster vs tally totals, X-Admin-Key required
*/
package handlers
