package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the AuthGate authentication gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a gateway client with a bounded request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with an explicit auth type ("database",
// "federation", "ldap" or "remote").
func (c *Client) Login(ctx context.Context, username, password, authType string) (*TokenResponse, error) {
	return c.login(ctx, "/v1/login", LoginRequest{
		Username: username,
		Password: password,
		AuthType: authType,
	})
}

// LoginDatabase authenticates against the provider's own user database.
func (c *Client) LoginDatabase(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.login(ctx, "/v1/login/database", LoginRequest{Username: username, Password: password})
}

// LoginFederation authenticates through the federation backend.
func (c *Client) LoginFederation(ctx context.Context, username, password string) (*TokenResponse, error) {
	return c.login(ctx, "/v1/login/federation", LoginRequest{Username: username, Password: password})
}

func (c *Client) login(ctx context.Context, path string, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.postJSON(ctx, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MFASetup enrolls the user and returns the secret with its
// provisioning URI. Calling it again rotates the secret.
func (c *Client) MFASetup(ctx context.Context, username string) (*MFASetupResponse, error) {
	var resp MFASetupResponse
	if err := c.postJSON(ctx, "/v1/mfa/setup", MFARequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MFAVerify checks a TOTP code. A wrong code is reported as false, not
// as an error.
func (c *Client) MFAVerify(ctx context.Context, username, code string) (bool, error) {
	var resp MFAVerifyResponse
	err := c.postJSON(ctx, "/v1/mfa/verify", MFAVerifyRequest{Username: username, Code: code}, &resp)
	if err != nil {
		var apiErr *APIError
		// The gateway answers 401 for a wrong code; that is a verdict,
		// not a transport failure.
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return resp.Valid, nil
}

// MFADisable removes the user's enrollment. Safe to call repeatedly.
func (c *Client) MFADisable(ctx context.Context, username string) error {
	return c.postJSON(ctx, "/v1/mfa/disable", MFARequest{Username: username}, nil)
}

// MFAStatus reports whether the user has an active enrollment.
func (c *Client) MFAStatus(ctx context.Context, username string) (bool, error) {
	var resp MFAStatusResponse
	u := "/v1/mfa/status?username=" + url.QueryEscape(username)
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

// SearchDirectory lists directory users matching the query. An empty
// query lists everyone.
func (c *Client) SearchDirectory(ctx context.Context, query string) (*DirectoryUsersResponse, error) {
	var resp DirectoryUsersResponse
	u := "/v1/directory/users"
	if query != "" {
		u += "?search=" + url.QueryEscape(query)
	}
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDirectoryUser adds a user to the local federation directory.
func (c *Client) CreateDirectoryUser(ctx context.Context, req DirectoryCreateRequest) (*DirectoryUser, error) {
	var resp DirectoryUser
	if err := c.postJSON(ctx, "/v1/directory/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.getJSON(ctx, "/livez", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Readyz checks the readiness probe, including store connectivity.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.getJSON(ctx, "/readyz", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, respBody)
}

func (c *Client) getJSON(ctx context.Context, path string, respBody any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, respBody)
}

func (c *Client) do(req *http.Request, respBody any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := parseErrorResponse(resp, body); err != nil {
		return err
	}

	if respBody == nil {
		return nil
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
