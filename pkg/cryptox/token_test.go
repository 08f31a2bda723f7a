package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/auslane/authgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, cryptox.TokenSize256)
}

func TestGenerateTokenRejectsInvalidSize(t *testing.T) {
	t.Parallel()

	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)

	_, err = cryptox.GenerateToken(-1)
	require.Error(t, err)
}

func TestGenerateTokenIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 100)
	for range 100 {
		token, err := cryptox.GenerateToken(cryptox.TokenSize128)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	a := cryptox.FingerprintToken("some-opaque-token")
	b := cryptox.FingerprintToken("some-opaque-token")
	c := cryptox.FingerprintToken("another-token")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 43) // base64url SHA-256 without padding
}
