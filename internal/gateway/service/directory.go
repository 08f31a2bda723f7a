package service

import (
	"context"
	"fmt"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/pkg/cryptox"
	"github.com/auslane/authgate/pkg/idx"
)

// DirectoryService manages the local federation directory: the users
// the DirectoryValidator authenticates against.
type DirectoryService struct {
	Store store.Store
}

// CreateUser hashes the password and stores the user enabled.
func (s *DirectoryService) CreateUser(ctx context.Context, username, email, password, firstName, lastName string) (domain.DirectoryUser, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.DirectoryUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.DirectoryUser{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Enabled:      true,
	}
	if err := s.Store.Users().Create(ctx, user); err != nil {
		return domain.DirectoryUser{}, err
	}

	return user, nil
}

// GetByUsername returns a single directory user, or store.ErrNotFound.
func (s *DirectoryService) GetByUsername(ctx context.Context, username string) (domain.DirectoryUser, error) {
	return s.Store.Users().GetByUsername(ctx, username)
}

// Search returns users whose username, email or name contains the
// query, ordered by username. An empty query matches everyone.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]domain.DirectoryUser, error) {
	return s.Store.Users().Search(ctx, query)
}

// Count returns the number of directory users.
func (s *DirectoryService) Count(ctx context.Context) (int, error) {
	return s.Store.Users().Count(ctx)
}

// SetEnabled toggles whether the user may authenticate.
func (s *DirectoryService) SetEnabled(ctx context.Context, username string, enabled bool) error {
	return s.Store.Users().SetEnabled(ctx, username, enabled)
}
