package domain

import (
	"fmt"
	"time"
)

// AuthResult is the outcome of a successful authentication: the token pair
// minted by the identity server plus presentation metadata. It is constructed
// exactly once per verified credential and owned by the caller afterwards.
type AuthResult struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	TokenType    string        `json:"token_type"` // always "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"` // seconds until access token expiry
	Username     string        `json:"username"`
	Message      string        `json:"message,omitempty"`
}

// ErrorKind is a stable, machine-readable classification of an
// authentication failure.
type ErrorKind string

const (
	// ErrKindInvalidCredentials covers any issuer-side rejection of a
	// database-backed credential (bad password, locked account, outage).
	ErrKindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"

	// ErrKindFederationAuthFailed means the federation backend explicitly
	// rejected the credential. No token is issued.
	ErrKindFederationAuthFailed ErrorKind = "FEDERATION_AUTH_FAILED"

	// ErrKindFederationError covers transport or protocol failures while
	// talking to the federation backend or issuing the follow-up token.
	ErrKindFederationError ErrorKind = "FEDERATION_ERROR"

	// ErrKindUnsupportedAuthType means no registered strategy claims the
	// requested authentication type.
	ErrKindUnsupportedAuthType ErrorKind = "UNSUPPORTED_AUTH_TYPE"

	// ErrKindStrategyFailure wraps an unexpected, untyped failure escaping a
	// strategy. The cause is kept for logs, never for callers.
	ErrKindStrategyFailure ErrorKind = "STRATEGY_FAILURE"
)

// AuthError is the typed failure crossing the dispatcher boundary. The
// wrapped cause is for internal diagnostics only; Message is the generic
// human-readable text callers may surface. It never carries the password.
type AuthError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// NewAuthError builds a typed authentication error, optionally wrapping an
// underlying cause for logging.
func NewAuthError(kind ErrorKind, message string, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: message, cause: cause}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the original cause for errors.Is/As and internal logging.
func (e *AuthError) Unwrap() error { return e.cause }
