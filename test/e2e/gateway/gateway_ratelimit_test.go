package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/auslane/authgate/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

func TestE2ELoginRateLimiting(t *testing.T) {
	baseURL, cleanup := setupGatewayContainerWithDefaultRateLimits(t)
	defer cleanup()
	ctx := context.Background()

	client := gatesdk.NewClient(baseURL)

	// Hammer the login endpoint with bad credentials until the strict
	// limit trips. The default budget is 5 per minute per IP+username.
	var limited bool
	for range 20 {
		_, err := client.LoginDatabase(ctx, "bruteforce", "guess")
		require.Error(t, err)

		var apiErr *gatesdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	require.True(t, limited, "expected a 429 within 20 attempts")
}
