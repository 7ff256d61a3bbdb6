package transport

import (
	"context"
	"net/http"
)

// SessionCookie names the cookie carrying the dashboard session ID.
const SessionCookie = "kpiboard_session"

type sessionKey struct{}

// SessionIDFromContext returns the session ID from context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok
}

// SessionMiddleware extracts the session cookie and stores its value in
// context. Requests without a session pass through; the unlock check happens
// on the gated routes.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err == nil && cookie.Value != "" {
			ctx := context.WithValue(r.Context(), sessionKey{}, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}
