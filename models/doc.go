/*
Package models defines request, response, and error types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: first_name, last_name, alt_cohort
  - LoginRequest: email, password
  - VoteRequest: email, choice
  - LogoutRequest: email
  - ContactRequest: email, message

# Response Types

Types for JSON responses:

  - RegisterResponse: derived identity plus a human message
  - LoginResponse: session_id plus a human message
  - ResultsResponse: counts per choice and the total
  - ReconcileResponse: roster voted count vs tally total
  - MessageResponse: a bare human message
  - ErrorResponse: standard error envelope

Voter-facing messages are deliberately terse and non-revealing; in
particular a failed login never distinguishes an unknown email from a wrong
password.
*/
package models
