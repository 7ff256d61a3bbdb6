package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ProjectAuthenticator checks whether a session has unlocked a project.
type ProjectAuthenticator interface {
	Authenticate(sessionID, project string) bool
}

// RequireUnlocked gates write routes on the session having unlocked the
// project named in the URL.
func RequireUnlocked(auth ProjectAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			project := chi.URLParam(r, "project")
			sessionID, ok := SessionIDFromContext(r.Context())
			if !ok || !auth.Authenticate(sessionID, project) {
				writeError(w, http.StatusUnauthorized, "project is locked; log in first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
