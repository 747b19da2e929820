package middleware

import (
	"context"

	appsession "github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyLocale  ctxKey = "locale"
	ctxKeySession ctxKey = "session"
	ctxKeyUser    ctxKey = "user"
)

// WithLocale stores the resolved locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFromContext returns the locale resolved for this request.
func LocaleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLocale).(string)
	return v, ok && v != ""
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	sess, ok := ctx.Value(ctxKeySession).(*appsession.Session)
	return sess, ok && sess != nil
}

// User represents the authenticated staff member for the current request.
type User struct {
	UID   string
	Email string
	Roles []string
}

// WithUser stores the authenticated user in context.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext retrieves the authenticated user if present.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*User)
	return u, ok && u != nil
}
