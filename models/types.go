package models

// Request types

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AltCohort bool   `json:"alt_cohort"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VoteRequest struct {
	Email  string `json:"email"`
	Choice string `json:"choice"`
}

type LogoutRequest struct {
	Email string `json:"email"`
}

type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Response types

type RegisterResponse struct {
	Identity string `json:"identity"`
	Message  string `json:"message"`
}

type LoginResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ResultsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type ReconcileResponse struct {
	Voted      int  `json:"voted"`
	Counted    int  `json:"counted"`
	Consistent bool `json:"consistent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
