package service

import (
	"context"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/idp"
)

// DatabaseStrategy authenticates users whose credentials live in the
// identity provider's own database. The provider is both validator and
// issuer, so a single password grant settles the request.
type DatabaseStrategy struct {
	Issuer idp.TokenIssuer
}

func (s *DatabaseStrategy) Supports(authType string) bool {
	return authType == "database"
}

// Authenticate exchanges the credential for tokens. Every issuer-side
// rejection collapses to INVALID_CREDENTIALS so callers learn nothing
// about why the credential was refused.
func (s *DatabaseStrategy) Authenticate(ctx context.Context, cred domain.Credential) (domain.AuthResult, error) {
	grant, err := s.Issuer.PasswordGrant(ctx, cred.Username, cred.Password)
	if err != nil {
		return domain.AuthResult{}, domain.NewAuthError(
			domain.ErrKindInvalidCredentials,
			"invalid username or password",
			err,
		)
	}

	return domain.AuthResult{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    grant.TokenType,
		ExpiresIn:    grant.ExpiresIn,
		Username:     cred.Username,
		Message:      "authenticated via database",
	}, nil
}
