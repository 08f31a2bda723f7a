package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters shared by enrollment and verification. Authenticator
// apps default to these; changing them breaks existing enrollments.
const (
	totpPeriod = 30
	totpDigits = otp.DigitsSix
	totpAlgo   = otp.AlgorithmSHA1
)

type MFAService struct {
	Store  store.Store
	Issuer string // Issuer label shown in authenticator apps

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *MFAService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Setup enrolls the user: generates a fresh secret, stores it and
// returns it with the provisioning URI. Re-running setup rotates the
// secret, so codes from any earlier enrollment stop verifying.
func (s *MFAService) Setup(ctx context.Context, username string) (domain.MFASetup, error) {
	secret, err := s.GenerateSecret(ctx, username)
	if err != nil {
		return domain.MFASetup{}, err
	}

	return domain.MFASetup{
		Secret:        secret,
		EnrollmentURI: EnrollmentURI(s.Issuer, username, secret),
		Issuer:        s.Issuer,
		Account:       username,
	}, nil
}

// GenerateSecret creates a new base32 TOTP secret for the user,
// overwriting any existing one.
func (s *MFAService) GenerateSecret(ctx context.Context, username string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: username,
		Period:      totpPeriod,
		Digits:      totpDigits,
		Algorithm:   totpAlgo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	record := domain.MFARecord{
		Username: username,
		Secret:   key.Secret(),
		Enabled:  true,
	}
	if err := s.Store.MFA().Put(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return key.Secret(), nil
}

// VerifyCode checks a submitted code against the user's stored secret.
// It accepts codes from the current time step and the adjacent step on
// either side to tolerate clock drift. Users with no secret on record
// always fail, without error.
func (s *MFAService) VerifyCode(ctx context.Context, username, code string) (bool, error) {
	record, err := s.Store.MFA().Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load MFA record: %w", err)
	}

	valid, err := totp.ValidateCustom(code, record.Secret, s.now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    totpDigits,
		Algorithm: totpAlgo,
	})
	if err != nil {
		// Malformed codes are a failed verification, not a server error.
		return false, nil
	}

	return valid, nil
}

// Disable removes the user's enrollment entirely. The secret is
// discarded, so the user must run setup again before verifying codes.
// Disabling a user that was never enrolled is a no-op.
func (s *MFAService) Disable(ctx context.Context, username string) error {
	if err := s.Store.MFA().Delete(ctx, username); err != nil {
		return fmt.Errorf("failed to delete MFA record: %w", err)
	}
	return nil
}

// Enabled reports whether the user has an active enrollment. Unknown
// usernames are simply not enrolled.
func (s *MFAService) Enabled(ctx context.Context, username string) (bool, error) {
	record, err := s.Store.MFA().Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load MFA record: %w", err)
	}
	return record.Enabled, nil
}

// EnrollmentURI builds the otpauth provisioning URI authenticator apps
// scan during enrollment. Pure function of its inputs.
func EnrollmentURI(issuer, account, secret string) string {
	q := url.Values{
		"secret":    {secret},
		"issuer":    {issuer},
		"algorithm": {"SHA1"},
		"digits":    {strconv.Itoa(totpDigits.Length())},
		"period":    {strconv.Itoa(totpPeriod)},
	}

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + account,
		RawQuery: q.Encode(),
	}
	return u.String()
}
