package session

import (
	"context"
	"errors"
	"time"

	"lingo-service/internal/auth"
)

// ErrNoSession is returned when a session id does not resolve to a live session.
var ErrNoSession = errors.New("session: not found")

// Session is the server-side state addressed by the session cookie.
type Session struct {
	ID string `json:"id"`
	State
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"` // idle expiry, pushed forward on every access
}

// State is the part of a session that request handlers mutate.
// A nil User means the session is anonymous.
type State struct {
	User    *auth.Identity `json:"authenticatedUser,omitempty"`
	Lockout Lockout        `json:"lockout,omitzero"`
}

// IsLoggedIn reports whether the session carries an authenticated identity.
func (s State) IsLoggedIn() bool {
	return s.User != nil
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) when the session does not exist.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, s Session) error
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
}
