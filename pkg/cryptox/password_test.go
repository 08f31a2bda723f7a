package cryptox_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/auslane/authgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Point the pepper at a throw-away file so tests never touch a real one.
	dir, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	m.Run()
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	require.Error(t, cryptox.VerifyPassword("wrong password", hash))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := cryptox.HashPassword("same input")
	require.NoError(t, err)
	second, err := cryptox.HashPassword("same input")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=19456,t=2,p=1$missinghash",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	for _, encoded := range cases {
		require.Error(t, cryptox.VerifyPassword("anything", encoded), "hash: %q", encoded)
	}
}
