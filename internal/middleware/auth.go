package middleware

import (
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned when authentication fails.
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator resolves a submitted credential into a User. Credential
// storage and verification live with the external identity provider; this
// interface is the whole boundary.
type Authenticator interface {
	Authenticate(r *http.Request, token string) (*User, error)
}

// AuthError carries a reason code for failed authentication attempts.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError constructs an AuthError with the provided reason.
func NewAuthError(reason string, err error) error {
	return &AuthError{Reason: reason, Err: err}
}

const (
	// ReasonMissingToken indicates an auth attempt without credentials.
	ReasonMissingToken = "missing_token"
	// ReasonTokenInvalid indicates a malformed or invalid token.
	ReasonTokenInvalid = "token_invalid"
	// ReasonTokenExpired indicates an expired token.
	ReasonTokenExpired = "token_expired"
)

// DefaultAuthenticator accepts any non-empty token and grants the admin
// role. Intended strictly for local development.
func DefaultAuthenticator() Authenticator {
	return &passthroughAuthenticator{}
}

type passthroughAuthenticator struct{}

func (p *passthroughAuthenticator) Authenticate(_ *http.Request, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, NewAuthError(ReasonMissingToken, ErrUnauthorized)
	}
	return &User{UID: token, Roles: []string{"admin"}}, nil
}
