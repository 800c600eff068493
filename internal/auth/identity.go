package auth

// Identity is the authenticated user carried by a session.
// It is set only after a successful credential check.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
