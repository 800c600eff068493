package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// Manager ties the session store to the signed session cookie.
// Sessions are created lazily: Load hands out a fresh anonymous session
// that is only persisted once a handler calls Save.
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	ttl    time.Duration
	cookie CookieOptions
	now    func() time.Time
}

func NewManager(store Store, secret []byte, ttl time.Duration, opts CookieOptions) *Manager {
	codec := securecookie.New(secret, nil)
	codec.MaxAge(0) // expiry is enforced by the store TTL
	return &Manager{
		store:  store,
		codec:  codec,
		ttl:    ttl,
		cookie: opts,
		now:    time.Now,
	}
}

// SessionID extracts and verifies the session id carried by r.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var id string
	if err := m.codec.Decode(CookieName, cookie.Value, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Load returns the session referenced by the request cookie, extending its
// idle window, or a new unsaved anonymous session when there is none.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	ctx := r.Context()

	if id, ok := m.SessionID(r); ok {
		s, err := m.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			s.ExpiresAt = m.now().Add(m.ttl)
			if err := m.store.Touch(ctx, s.ID, s.ExpiresAt); err != nil {
				return nil, err
			}
			return s, nil
		}
	}

	return m.newSession()
}

// Reload fetches the current state of a session by id.
func (m *Manager) Reload(ctx context.Context, sessionID string) (*Session, error) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// Save persists s and (re)issues the session cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	s.ExpiresAt = m.now().Add(m.ttl)

	value, err := m.codec.Encode(CookieName, s.ID)
	if err != nil {
		return fmt.Errorf("session: encode cookie: %w", err)
	}

	if err := m.store.Save(ctx, *s); err != nil {
		return err
	}

	SetCookie(w, value, s.ExpiresAt, m.cookie)
	return nil
}

// Renew moves s to a new session id and saves it. The old id is removed
// from the store first, so a pre-login cookie cannot be replayed after
// login and no new cookie is issued unless the old one is gone.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, s *Session) error {
	id, err := GenerateID()
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, s.ID); err != nil {
		return err
	}

	s.ID = id
	return m.Save(ctx, w, s)
}

// Destroy removes the request's session, if any, and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if id, ok := m.SessionID(r); ok {
		err = m.store.Delete(ctx, id)
	}
	ClearCookie(w, m.cookie)
	return err
}

func (m *Manager) newSession() (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	now := m.now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}, nil
}
