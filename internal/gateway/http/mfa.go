package http

import (
	"encoding/json"
	"net/http"

	"github.com/auslane/authgate/internal/gateway/service"
	"github.com/auslane/authgate/pkg/gatesdk"
	"github.com/auslane/authgate/pkg/httpx"
	"github.com/auslane/authgate/pkg/slogx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleSetup handles POST /v1/mfa/setup
//
//	@Summary		Enroll a user in TOTP MFA
//	@Description	Generates a TOTP secret for the user and returns it with the otpauth
//	@Description	enrollment URI. Repeating setup rotates the secret; codes from the
//	@Description	previous secret stop verifying immediately.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.MFARequest			true	"Username to enroll"
//	@Success		200		{object}	gatesdk.MFASetupResponse	"Secret and enrollment URI"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"Malformed request"
//	@Failure		500		{object}	gatesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/setup [post].
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.MFARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	setup, err := h.MFAService.Setup(ctx, req.Username)
	if err != nil {
		log.Error("failed to set up MFA", "username", req.Username, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.MFASetupResponse{
		Secret:        setup.Secret,
		EnrollmentURI: setup.EnrollmentURI,
		Issuer:        setup.Issuer,
		Account:       setup.Account,
	})
}

// HandleVerify handles POST /v1/mfa/verify
//
//	@Summary		Verify a TOTP code
//	@Description	Checks the code against the user's stored secret. Codes from the
//	@Description	adjacent time step on either side are accepted to tolerate clock drift.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.MFAVerifyRequest	true	"Username and code"
//	@Success		200		{object}	gatesdk.MFAVerifyResponse	"Code matched"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	gatesdk.MFAVerifyResponse	"Code did not match or user not enrolled"
//	@Failure		500		{object}	gatesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Code == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	valid, err := h.MFAService.VerifyCode(ctx, req.Username, req.Code)
	if err != nil {
		log.Error("failed to verify code", "username", req.Username, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	status := http.StatusOK
	if !valid {
		log.Warn("invalid TOTP code", "username", req.Username)
		status = http.StatusUnauthorized
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, status, gatesdk.MFAVerifyResponse{Valid: valid})
}

// HandleDisable handles POST /v1/mfa/disable
//
//	@Summary		Disable MFA for a user
//	@Description	Removes the user's enrollment and discards the secret. The user must
//	@Description	run setup again before codes verify. Safe to repeat.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.MFARequest		true	"Username"
//	@Success		200		{object}	map[string]string		"Success message"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"Malformed request"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"Internal server error"
//	@Router			/v1/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.MFARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.Disable(ctx, req.Username); err != nil {
		log.Error("failed to disable MFA", "username", req.Username, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "MFA disabled",
	})
}

// HandleStatus handles GET /v1/mfa/status
//
//	@Summary		Check MFA enrollment status
//	@Description	Reports whether the user has an active enrollment. Unknown usernames
//	@Description	are simply not enrolled.
//	@Tags			MFA
//	@Produce		json
//	@Param			username	query		string						true	"Username"
//	@Success		200			{object}	gatesdk.MFAStatusResponse	"Enrollment status"
//	@Failure		400			{object}	gatesdk.ErrorResponse		"Missing username"
//	@Failure		500			{object}	gatesdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/status [get].
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.URL.Query().Get("username")
	if username == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	enabled, err := h.MFAService.Enabled(ctx, username)
	if err != nil {
		log.Error("failed to load MFA status", "username", username, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.MFAStatusResponse{Enabled: enabled})
}
