package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client implements TokenIssuer against an OpenID Connect provider that
// supports the resource owner password grant, such as Keycloak.
type Client struct {
	ServerURL    string
	Realm        string
	ClientID     string
	ClientSecret string // empty for public clients
	HTTPClient   *http.Client
}

// NewClient creates a password-grant client for the given realm.
func NewClient(serverURL, realm, clientID, clientSecret string) *Client {
	return &Client{
		ServerURL:    strings.TrimSuffix(serverURL, "/"),
		Realm:        realm,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) tokenEndpoint() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.ServerURL, c.Realm)
}

// PasswordGrant exchanges the user's credentials for tokens. A 4xx
// response maps to ErrGrantRejected; anything else is a provider error.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (TokenGrant, error) {
	data := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.ClientID},
		"username":   {username},
		"password":   {password},
	}
	if c.ClientSecret != "" {
		data.Set("client_secret", c.ClientSecret)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenEndpoint(),
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return TokenGrant{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return TokenGrant{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return TokenGrant{}, fmt.Errorf("%w: status %d: %s", ErrGrantRejected, resp.StatusCode, string(bodyBytes))
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return TokenGrant{}, fmt.Errorf(
			"token request failed with status %d: %s",
			resp.StatusCode,
			string(bodyBytes),
		)
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TokenGrant{}, fmt.Errorf("failed to decode response: %w", err)
	}

	grant := TokenGrant{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		TokenType:    body.TokenType,
		ExpiresIn:    time.Duration(body.ExpiresIn) * time.Second,
	}
	if grant.TokenType == "" {
		grant.TokenType = "Bearer"
	}
	if grant.ExpiresIn == 0 {
		// Some providers omit expires_in. Recover it from the token's
		// exp claim; the signature is verified upstream, not here.
		grant.ExpiresIn = expiryFromToken(grant.AccessToken)
	}

	return grant, nil
}

func expiryFromToken(accessToken string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return 0
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}

	remaining := time.Until(exp.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
