/*
Package main provides the entry point for the ballotgate election server.

Ballotgate runs a small single-election vote: eligible people register,
receive derived credentials by mail, sign in from one device, and cast
exactly one vote while the voting window is open. The roster and the tally
live as versioned blobs behind compare-and-swap, so no vote is ever lost or
double counted even under concurrent submissions.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:election.db CHOICES=Red,Blue \
	WINDOW_OPEN=2026-05-01T08:00:00Z WINDOW_CLOSE=2026-05-01T20:00:00Z \
	EMAIL_DOMAIN=campus.edu SECRET_SALT=... ADMIN_KEY=... go run .

Or with flags:

	go run . -p 3640 -d "file:election.db" -choices Red,Blue ...

A .env file in the working directory is loaded first; real environment
variables win.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite or PostgreSQL connection string
  - CHOICES (-choices): at least two ballot labels
  - WINDOW_OPEN / WINDOW_CLOSE (-open / -close): RFC 3339 voting window
  - EMAIL_DOMAIN (-domain): domain for derived voter identities
  - SECRET_SALT (-secret-salt): secret for voter password derivation
  - ADMIN_KEY (-admin-key): key for the admin endpoints

Optional settings:

  - PORT (-p): server port (default: 3640)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SMTP_HOST/PORT/USER/PASSWORD: mail relay; logged locally when absent
  - ELIGIBILITY_FILE (-eligible): CSV of eligible names
  - AUDIT_LOG (-audit): append-only audit trail path

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (registration, voting, results, contact)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - coordinator: the voting state machine and two-document transaction
  - store: roster and tally documents over versioned blobs
  - blobstore: compare-and-swap blob storage (memory, SQL)
  - session: single-active-session registry
  - timegate: voting window checks
  - auth: identity and secret derivation
  - eligibility, notify, audit: external collaborators
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
