package federation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteValidator checks credentials against a remote validation
// endpoint that answers a JSON verdict.
type RemoteValidator struct {
	ValidateURL string
	HTTPClient  *http.Client
}

// NewRemoteValidator creates a validator that POSTs to validateURL.
func NewRemoteValidator(validateURL string) *RemoteValidator {
	return &RemoteValidator{
		ValidateURL: strings.TrimSuffix(validateURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Validate asks the remote source to verify the credentials. A negative
// verdict or 4xx status maps to ErrRejected.
func (v *RemoteValidator) Validate(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.ValidateURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf(
			"validation request failed with status %d: %s",
			resp.StatusCode,
			string(bodyBytes),
		)
	}

	var body struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !body.Valid {
		return ErrRejected
	}

	return nil
}
