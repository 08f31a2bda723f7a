// Package idp talks to the backing identity provider. The gateway never
// mints tokens itself; every successful authentication exchanges the
// user's credentials for tokens issued upstream.
package idp

import (
	"context"
	"errors"
	"time"
)

// ErrGrantRejected indicates the identity provider refused the grant,
// typically because the username or password is wrong or the account is
// locked. Transport and server failures are returned as ordinary errors.
var ErrGrantRejected = errors.New("grant_rejected")

// TokenGrant is the provider's answer to a successful password grant.
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
}

// TokenIssuer exchanges a username and password for tokens.
type TokenIssuer interface {
	PasswordGrant(ctx context.Context, username, password string) (TokenGrant, error)
}
