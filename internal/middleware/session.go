package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	appsession "github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
)

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) (*appsession.Session, error)
	New() *appsession.Session
	Save(http.ResponseWriter, *appsession.Session) error
	Destroy(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and persists
// changes back to the client cookie just before the response body starts.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Load(r)
			if errors.Is(err, appsession.ErrExpired) {
				store.Destroy(w)
				sess = store.New()
			} else if err != nil || sess == nil {
				if err != nil {
					log.Printf("session load failed: %v", err)
				}
				sess = store.New()
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			if u := sess.User(); u != nil {
				ctx = WithUser(ctx, &User{UID: u.UID, Email: u.Email, Roles: u.Roles})
			}

			rw := newResponseRecorder(w, func(w http.ResponseWriter) {
				if err := store.Save(w, sess); err != nil {
					log.Printf("session save failed: %v", err)
				}
			})
			next.ServeHTTP(rw, r.WithContext(ctx))

			// HEAD and empty responses never trigger the hook
			rw.flushHook()
		})
	}
}
