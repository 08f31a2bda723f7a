package federation

import (
	"context"
	"errors"
	"fmt"

	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/pkg/cryptox"
)

// DirectoryValidator checks credentials against the gateway's own user
// directory. It stands in for a remote federation source in deployments
// that manage federated users locally.
type DirectoryValidator struct {
	Store store.Store
}

// Validate verifies the password hash of a directory user. Unknown
// users, disabled accounts and wrong passwords all map to ErrRejected
// so callers cannot distinguish them.
func (v *DirectoryValidator) Validate(ctx context.Context, username, password string) error {
	user, err := v.Store.Users().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrRejected
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !user.Enabled {
		return ErrRejected
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return ErrRejected
	}

	return nil
}
