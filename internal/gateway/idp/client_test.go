package idp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPasswordGrantSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/realms/internal/protocol/openid-connect/token", r.URL.Path)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "password", r.PostForm.Get("grant_type"))
		require.Equal(t, "gateway", r.PostForm.Get("client_id"))
		require.Equal(t, "alice", r.PostForm.Get("username"))
		require.Equal(t, "s3cret", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "at-123",
			"refresh_token": "rt-456",
			"token_type": "Bearer",
			"expires_in": 300
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "internal", "gateway", "")
	grant, err := c.PasswordGrant(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "at-123", grant.AccessToken)
	require.Equal(t, "rt-456", grant.RefreshToken)
	require.Equal(t, "Bearer", grant.TokenType)
	require.Equal(t, 5*time.Minute, grant.ExpiresIn)
}

func TestPasswordGrantRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "internal", "gateway", "")
	_, err := c.PasswordGrant(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrGrantRejected)
}

func TestPasswordGrantServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "internal", "gateway", "")
	_, err := c.PasswordGrant(context.Background(), "alice", "s3cret")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrGrantRejected)
}

func TestPasswordGrantSendsClientSecret(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "topsecret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":60}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "internal", "gateway", "topsecret")
	_, err := c.PasswordGrant(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
}

func TestPasswordGrantRecoversExpiryFromToken(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(10 * time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + signed + `"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "internal", "gateway", "")
	grant, err := c.PasswordGrant(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "Bearer", grant.TokenType)
	require.InDelta(t, (10 * time.Minute).Seconds(), grant.ExpiresIn.Seconds(), 5)
}
