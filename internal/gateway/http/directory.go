package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/service"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/pkg/gatesdk"
	"github.com/auslane/authgate/pkg/httpx"
	"github.com/auslane/authgate/pkg/slogx"
)

// DirectoryHandler manages the local federation directory.
type DirectoryHandler struct {
	DirectoryService *service.DirectoryService
}

// HandleSearch handles GET /v1/directory/users
//
//	@Summary		Search directory users
//	@Description	Lists users whose username, email or name contains the search query,
//	@Description	ordered by username. An empty query lists everyone.
//	@Tags			Directory
//	@Produce		json
//	@Param			search	query		string							false	"Search query"
//	@Success		200		{object}	gatesdk.DirectoryUsersResponse	"Matching users"
//	@Failure		500		{object}	gatesdk.ErrorResponse			"Internal server error"
//	@Router			/v1/directory/users [get].
func (h *DirectoryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.DirectoryService.Search(ctx, r.URL.Query().Get("search"))
	if err != nil {
		log.Error("failed to search directory", "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	resp := gatesdk.DirectoryUsersResponse{
		Users: make([]gatesdk.DirectoryUser, 0, len(users)),
		Count: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, toDirectoryUser(u))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/directory/users
//
//	@Summary		Create a directory user
//	@Description	Adds a user the federation validator can authenticate. The password
//	@Description	is hashed before storage and never returned.
//	@Tags			Directory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.DirectoryCreateRequest	true	"New user"
//	@Success		201		{object}	gatesdk.DirectoryUser			"Created user"
//	@Failure		400		{object}	gatesdk.ErrorResponse			"Malformed request"
//	@Failure		409		{object}	gatesdk.ErrorResponse			"Username or email already taken"
//	@Failure		500		{object}	gatesdk.ErrorResponse			"Internal server error"
//	@Router			/v1/directory/users [post].
func (h *DirectoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.DirectoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.DirectoryService.CreateUser(ctx, req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			gatesdk.NewAPIError(http.StatusConflict, gatesdk.CodeInvalidRequest,
				"username or email already taken").WriteError(w)
			return
		}
		log.Error("failed to create directory user", "username", req.Username, "err", err)
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toDirectoryUser(user))
}

func toDirectoryUser(u domain.DirectoryUser) gatesdk.DirectoryUser {
	return gatesdk.DirectoryUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Enabled:   u.Enabled,
	}
}
