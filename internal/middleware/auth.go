package middleware

import (
	"context"
	"net/http"

	"lingo-service/internal/auth"
	"lingo-service/internal/session"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

type AuthMiddleware struct {
	Sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read and verify session cookie
		sessionID, ok := a.Sessions.SessionID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Load session; expired sessions are gone from the store
		sess, err := a.Sessions.Reload(r.Context(), sessionID)
		if err != nil || !sess.IsLoggedIn() {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, *sess.User)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
