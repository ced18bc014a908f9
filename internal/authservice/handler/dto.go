package handler

// UpsertAccountRequest represents a request to create an account or rename
// an existing one. Field-level rules (length, character set) run through the
// validation layer, not through binding tags, so violations come back as a
// message list instead of a single binding error.
type UpsertAccountRequest struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UsernameValidationResponse reports the availability probe outcome: a clear
// boolean plus the human-readable reasons when it is false.
type UsernameValidationResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}
