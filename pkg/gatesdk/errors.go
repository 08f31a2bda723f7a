package gatesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/auslane/authgate/pkg/httpx"
)

// Stable failure classifications carried in the "error" field of error
// responses. They mirror the gateway's internal error kinds.
const (
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeFederationAuthFailed = "FEDERATION_AUTH_FAILED"
	CodeFederationError      = "FEDERATION_ERROR"
	CodeUnsupportedAuthType  = "UNSUPPORTED_AUTH_TYPE"
	CodeStrategyFailure      = "STRATEGY_FAILURE"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeServerError          = "SERVER_ERROR"
)

// APIError is a typed gateway error. It is used both by the server to
// write HTTP error responses and by the SDK client to represent them.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable failure classification
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed
	// or missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        CodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrServerError is returned when the gateway encountered an
	// unexpected condition.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        CodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with a custom status, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        CodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
