package service

import (
	"context"
	"errors"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/federation"
	"github.com/auslane/authgate/internal/gateway/idp"
)

// FederationStrategy authenticates in two phases: the federation source
// vouches for the credential first, then the identity provider mints
// the tokens. No token is ever issued for a credential the federation
// source rejected.
type FederationStrategy struct {
	Validator federation.CredentialValidator
	Issuer    idp.TokenIssuer
}

// Supports matches the three aliases callers use for federated logins.
func (s *FederationStrategy) Supports(authType string) bool {
	switch authType {
	case "federation", "ldap", "remote":
		return true
	}
	return false
}

func (s *FederationStrategy) Authenticate(ctx context.Context, cred domain.Credential) (domain.AuthResult, error) {
	if err := s.Validator.Validate(ctx, cred.Username, cred.Password); err != nil {
		if errors.Is(err, federation.ErrRejected) {
			return domain.AuthResult{}, domain.NewAuthError(
				domain.ErrKindFederationAuthFailed,
				"federation authentication failed",
				err,
			)
		}
		return domain.AuthResult{}, domain.NewAuthError(
			domain.ErrKindFederationError,
			"federation backend unavailable",
			err,
		)
	}

	grant, err := s.Issuer.PasswordGrant(ctx, cred.Username, cred.Password)
	if err != nil {
		return domain.AuthResult{}, domain.NewAuthError(
			domain.ErrKindFederationError,
			"token issuance failed",
			err,
		)
	}

	return domain.AuthResult{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    grant.TokenType,
		ExpiresIn:    grant.ExpiresIn,
		Username:     cred.Username,
		Message:      "authenticated via federation",
	}, nil
}
