package gatesdk

// ErrorResponse is the JSON body of every error the gateway returns.
type ErrorResponse struct {
	// Error is the stable failure classification (e.g., "INVALID_CREDENTIALS")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// LoginRequest is the body of POST /v1/login. AuthType selects the
// strategy; the fixed-type endpoints omit it.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	AuthType string `json:"auth_type,omitempty"`
}

// TokenResponse is returned from a successful login.
type TokenResponse struct {
	// AccessToken is the bearer token minted by the identity provider
	AccessToken string `json:"access_token"`

	// RefreshToken is the refresh token, when the provider issues one
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Username echoes the authenticated username
	Username string `json:"username"`

	// Message notes which strategy authenticated the user
	Message string `json:"message,omitempty"`
}

// MFASetupResponse is returned from POST /v1/mfa/setup. The secret is
// shown exactly once; afterwards only codes are accepted.
type MFASetupResponse struct {
	Secret        string `json:"secret"`
	EnrollmentURI string `json:"enrollment_uri"`
	Issuer        string `json:"issuer"`
	Account       string `json:"account"`
}

// MFARequest identifies the user for MFA setup, disable and status.
type MFARequest struct {
	Username string `json:"username"`
}

// MFAVerifyRequest is the body of POST /v1/mfa/verify.
type MFAVerifyRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// MFAVerifyResponse reports whether the submitted code matched.
type MFAVerifyResponse struct {
	Valid bool `json:"valid"`
}

// MFAStatusResponse reports whether the user has an active enrollment.
type MFAStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// DirectoryUser is a user in the gateway's local federation directory.
// Password material never appears here.
type DirectoryUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// DirectoryUsersResponse is returned from GET /v1/directory/users.
type DirectoryUsersResponse struct {
	Users []DirectoryUser `json:"users"`
	Count int             `json:"count"`
}

// DirectoryCreateRequest is the body of POST /v1/directory/users.
type DirectoryCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// HealthChecks reports the state of the gateway's dependencies.
type HealthChecks struct {
	Store string `json:"store"`
}

// HealthResponse is returned from the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
