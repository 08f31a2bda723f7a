package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/service"
	"github.com/auslane/authgate/pkg/gatesdk"
	"github.com/auslane/authgate/pkg/httpx"
	"github.com/auslane/authgate/pkg/slogx"
)

// LoginHandler handles all login endpoints.
type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleLogin handles POST /v1/login
//
//	@Summary		Authenticate with an explicit auth type
//	@Description	Dispatches the credential to the strategy registered for auth_type
//	@Description	("database", "federation", "ldap" or "remote") and returns the token pair.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request		body		gatesdk.LoginRequest	true	"Credentials and auth type"
//	@Param			auth_type	query		string					false	"Auth type when absent from the body (defaults to database)"
//	@Success		200			{object}	gatesdk.TokenResponse	"Token pair"
//	@Failure		400			{object}	gatesdk.ErrorResponse	"Malformed request or unsupported auth type"
//	@Failure		401			{object}	gatesdk.ErrorResponse	"Authentication failed"
//	@Failure		502			{object}	gatesdk.ErrorResponse	"Federation backend unavailable"
//	@Failure		500			{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/login [post].
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}

	authType := req.AuthType
	if authType == "" {
		authType = r.URL.Query().Get("auth_type")
	}
	if authType == "" {
		authType = "database"
	}
	h.authenticate(w, r, req, authType)
}

// HandleLoginDatabase handles POST /v1/login/database
//
//	@Summary		Authenticate against the provider's user database
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	gatesdk.TokenResponse	"Token pair"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/login/database [post].
func (h *LoginHandler) HandleLoginDatabase(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}
	h.authenticate(w, r, req, "database")
}

// HandleLoginFederation handles POST /v1/login/federation
//
//	@Summary		Authenticate through the federation backend
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	gatesdk.TokenResponse	"Token pair"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"Federation rejected the credentials"
//	@Failure		502		{object}	gatesdk.ErrorResponse	"Federation backend unavailable"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/login/federation [post].
func (h *LoginHandler) HandleLoginFederation(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}
	h.authenticate(w, r, req, "federation")
}

func decodeLoginRequest(w http.ResponseWriter, r *http.Request) (gatesdk.LoginRequest, bool) {
	log := slogx.FromContext(r.Context())

	var req gatesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		gatesdk.ErrInvalidRequest.WriteError(w)
		return gatesdk.LoginRequest{}, false
	}
	if req.Username == "" || req.Password == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return gatesdk.LoginRequest{}, false
	}
	return req, true
}

func (h *LoginHandler) authenticate(w http.ResponseWriter, r *http.Request, req gatesdk.LoginRequest, authType string) {
	cred := domain.Credential{Username: req.Username, Password: req.Password}

	result, err := h.AuthService.Authenticate(r.Context(), cred, authType)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    int(result.ExpiresIn.Seconds()),
		Username:     result.Username,
		Message:      result.Message,
	})
}

// writeAuthError maps typed authentication failures to HTTP responses.
// The wrapped cause stays in the logs; only kind and generic message
// cross the wire.
func writeAuthError(w http.ResponseWriter, err error) {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	status := http.StatusInternalServerError
	switch authErr.Kind {
	case domain.ErrKindInvalidCredentials, domain.ErrKindFederationAuthFailed:
		status = http.StatusUnauthorized
	case domain.ErrKindUnsupportedAuthType:
		status = http.StatusBadRequest
	case domain.ErrKindFederationError:
		status = http.StatusBadGateway
	case domain.ErrKindStrategyFailure:
		status = http.StatusInternalServerError
	}

	gatesdk.NewAPIError(status, string(authErr.Kind), authErr.Message).WriteError(w)
}
