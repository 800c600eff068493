package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie carrying the signed session id.
const CookieName = "session"

// CookieOptions defines how session cookies are issued. The cookie is
// always HttpOnly; an empty Path means "/" and a zero SameSite means Lax.
type CookieOptions struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) build(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if c.SameSite == 0 {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}

// SetCookie issues the session cookie. value is the signed session id.
func SetCookie(w http.ResponseWriter, value string, expiresAt time.Time, opts CookieOptions) {
	c := opts.build(value)
	c.Expires = expiresAt
	http.SetCookie(w, c)
}

// ClearCookie tells the client to drop the session cookie.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	c := opts.build("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
