// Package federation validates credentials against an external user
// source before the gateway asks the identity provider for tokens.
// Federated logins are a two-step dance: the federation source vouches
// for the password first, then the provider issues the tokens.
package federation

import (
	"context"
	"errors"
)

// ErrRejected indicates the federation source knows the user but the
// credentials did not check out, or the account is disabled. Transport
// and infrastructure failures are returned as ordinary errors.
var ErrRejected = errors.New("federation_rejected")

// CredentialValidator answers whether a username and password are valid
// according to an external user source.
type CredentialValidator interface {
	Validate(ctx context.Context, username, password string) error
}
