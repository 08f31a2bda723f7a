package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/pkg/slogx"
)

// Strategy authenticates a credential for the auth types it claims.
// Strategies hold no per-request state and are safe to share across
// concurrent calls.
type Strategy interface {
	// Supports reports whether this strategy handles the given auth
	// type. The dispatcher normalizes the type to lower case first.
	Supports(authType string) bool

	// Authenticate verifies the credential and returns the token pair.
	// Failures should be typed *domain.AuthError; anything else is
	// wrapped by the dispatcher.
	Authenticate(ctx context.Context, cred domain.Credential) (domain.AuthResult, error)
}

// AuthService dispatches authentication requests to the first
// registered strategy that supports the requested auth type. The
// strategy list is fixed at construction and read-only afterwards.
type AuthService struct {
	Strategies []Strategy
}

// Authenticate resolves the strategy for authType and runs it. Unknown
// types fail fast without touching any credential backend.
func (s *AuthService) Authenticate(ctx context.Context, cred domain.Credential, authType string) (domain.AuthResult, error) {
	log := slogx.FromContext(ctx)
	normalized := strings.ToLower(strings.TrimSpace(authType))

	for _, strat := range s.Strategies {
		if !strat.Supports(normalized) {
			continue
		}

		result, err := strat.Authenticate(ctx, cred)
		if err != nil {
			var authErr *domain.AuthError
			if !errors.As(err, &authErr) {
				authErr = domain.NewAuthError(
					domain.ErrKindStrategyFailure,
					"authentication failed",
					err,
				)
			}
			log.Warn("authentication failed",
				slog.String("auth_type", normalized),
				slog.String("username", cred.Username),
				slog.String("kind", string(authErr.Kind)),
				slog.Any("err", authErr.Unwrap()),
			)
			return domain.AuthResult{}, authErr
		}

		log.Info("authentication succeeded",
			slog.String("auth_type", normalized),
			slog.String("username", cred.Username),
		)
		return result, nil
	}

	log.Warn("unsupported auth type", slog.String("auth_type", normalized))
	return domain.AuthResult{}, domain.NewAuthError(
		domain.ErrKindUnsupportedAuthType,
		"unsupported authentication type: "+normalized,
		nil,
	)
}
