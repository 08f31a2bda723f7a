package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/federation"
	"github.com/auslane/authgate/internal/gateway/idp"
	"github.com/stretchr/testify/require"
)

type fakeIssuer struct {
	calls int
	grant idp.TokenGrant
	err   error
}

func (f *fakeIssuer) PasswordGrant(_ context.Context, _, _ string) (idp.TokenGrant, error) {
	f.calls++
	if f.err != nil {
		return idp.TokenGrant{}, f.err
	}
	return f.grant, nil
}

type fakeValidator struct {
	calls int
	err   error
}

func (f *fakeValidator) Validate(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.AuthError {
	t.Helper()

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, kind, authErr.Kind)
	return authErr
}

func TestDatabaseStrategySuccess(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{grant: idp.TokenGrant{
		AccessToken:  "at",
		RefreshToken: "rt",
		TokenType:    "Bearer",
		ExpiresIn:    5 * time.Minute,
	}}
	svc := &AuthService{Strategies: []Strategy{&DatabaseStrategy{Issuer: issuer}}}

	result, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "database")
	require.NoError(t, err)
	require.Equal(t, "at", result.AccessToken)
	require.Equal(t, "rt", result.RefreshToken)
	require.Equal(t, "Bearer", result.TokenType)
	require.Equal(t, "alice", result.Username)
	require.Equal(t, 1, issuer.calls)
}

func TestDatabaseStrategyRejectionIsNormalized(t *testing.T) {
	t.Parallel()

	cause := errors.New("account locked by upstream policy")
	issuer := &fakeIssuer{err: cause}
	svc := &AuthService{Strategies: []Strategy{&DatabaseStrategy{Issuer: issuer}}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "database")
	authErr := requireKind(t, err, domain.ErrKindInvalidCredentials)

	// The upstream detail is wrapped for diagnostics, never surfaced.
	require.ErrorIs(t, err, cause)
	require.NotContains(t, authErr.Message, "locked")
}

func TestFederationRejectionStopsBeforeIssuance(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{}
	validator := &fakeValidator{err: federation.ErrRejected}
	svc := &AuthService{Strategies: []Strategy{
		&FederationStrategy{Validator: validator, Issuer: issuer},
	}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "federation")
	requireKind(t, err, domain.ErrKindFederationAuthFailed)
	require.Equal(t, 1, validator.calls)
	require.Equal(t, 0, issuer.calls)
}

func TestFederationTransportFailure(t *testing.T) {
	t.Parallel()

	validator := &fakeValidator{err: errors.New("connection refused")}
	svc := &AuthService{Strategies: []Strategy{
		&FederationStrategy{Validator: validator, Issuer: &fakeIssuer{}},
	}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "federation")
	requireKind(t, err, domain.ErrKindFederationError)
}

func TestFederationIssuerFailure(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{err: errors.New("bad gateway")}
	svc := &AuthService{Strategies: []Strategy{
		&FederationStrategy{Validator: &fakeValidator{}, Issuer: issuer},
	}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "federation")
	requireKind(t, err, domain.ErrKindFederationError)
	require.Equal(t, 1, issuer.calls)
}

func TestFederationSuccess(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{grant: idp.TokenGrant{AccessToken: "at", TokenType: "Bearer"}}
	validator := &fakeValidator{}
	svc := &AuthService{Strategies: []Strategy{
		&FederationStrategy{Validator: validator, Issuer: issuer},
	}}

	result, err := svc.Authenticate(context.Background(), domain.Credential{Username: "alice", Password: "pw"}, "ldap")
	require.NoError(t, err)
	require.Equal(t, "at", result.AccessToken)
	require.Equal(t, 1, validator.calls)
	require.Equal(t, 1, issuer.calls)
}

func TestAuthTypeMatchingIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{grant: idp.TokenGrant{AccessToken: "at"}}
	svc := &AuthService{Strategies: []Strategy{
		&DatabaseStrategy{Issuer: issuer},
		&FederationStrategy{Validator: &fakeValidator{}, Issuer: issuer},
	}}

	for _, authType := range []string{"DATABASE", "DataBase", "LDAP", "Remote", "FEDERATION", " database "} {
		_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "a", Password: "p"}, authType)
		require.NoError(t, err, "auth type %q", authType)
	}
}

func TestUnsupportedAuthTypeFailsFast(t *testing.T) {
	t.Parallel()

	issuer := &fakeIssuer{}
	validator := &fakeValidator{}
	svc := &AuthService{Strategies: []Strategy{
		&DatabaseStrategy{Issuer: issuer},
		&FederationStrategy{Validator: validator, Issuer: issuer},
	}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "a", Password: "p"}, "saml")
	requireKind(t, err, domain.ErrKindUnsupportedAuthType)
	require.Equal(t, 0, issuer.calls)
	require.Equal(t, 0, validator.calls)
}

type erringStrategy struct{}

func (erringStrategy) Supports(authType string) bool { return authType == "broken" }

func (erringStrategy) Authenticate(context.Context, domain.Credential) (domain.AuthResult, error) {
	return domain.AuthResult{}, errors.New("nil pointer somewhere deep")
}

func TestUntypedStrategyErrorIsWrapped(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Strategies: []Strategy{erringStrategy{}}}

	_, err := svc.Authenticate(context.Background(), domain.Credential{Username: "a", Password: "p"}, "broken")
	authErr := requireKind(t, err, domain.ErrKindStrategyFailure)
	require.NotContains(t, authErr.Message, "nil pointer")
}

func TestFirstSupportingStrategyWins(t *testing.T) {
	t.Parallel()

	first := &fakeIssuer{grant: idp.TokenGrant{AccessToken: "first"}}
	second := &fakeIssuer{grant: idp.TokenGrant{AccessToken: "second"}}
	svc := &AuthService{Strategies: []Strategy{
		&DatabaseStrategy{Issuer: first},
		&DatabaseStrategy{Issuer: second},
	}}

	result, err := svc.Authenticate(context.Background(), domain.Credential{Username: "a", Password: "p"}, "database")
	require.NoError(t, err)
	require.Equal(t, "first", result.AccessToken)
	require.Equal(t, 0, second.calls)
}
