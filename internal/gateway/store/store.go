package store

import (
	"context"
	"errors"

	"github.com/auslane/authgate/internal/gateway/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, memory)
// implement this. Sub-repositories keep concerns tidy and testable, and the
// driver is responsible for serializing read-modify-write sequences per key
// so callers never reason about interleaving.
type Store interface {
	MFA() MFA
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn errors and
	// committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// MFA holds the per-username second-factor records. Put always overwrites:
// rotating a secret immediately invalidates codes from the previous one.
type MFA interface {
	// Get returns the MFA record for a username.
	Get(ctx context.Context, username string) (domain.MFARecord, error)

	// Put upserts the record for rec.Username, replacing any prior secret.
	Put(ctx context.Context, rec domain.MFARecord) error

	// SetEnabled flips the enabled flag without touching the secret.
	SetEnabled(ctx context.Context, username string, enabled bool) error

	// Delete removes the record entirely. Deleting an absent record is not
	// an error.
	Delete(ctx context.Context, username string) error
}

// Users is the local federation directory consulted by the in-process
// federation validator.
type Users interface {
	// GetByUsername returns a directory user by username.
	GetByUsername(ctx context.Context, username string) (domain.DirectoryUser, error)

	// GetByEmail returns a directory user by email.
	GetByEmail(ctx context.Context, email string) (domain.DirectoryUser, error)

	// Create inserts a new directory user (id provided by the app via ULID).
	Create(ctx context.Context, u domain.DirectoryUser) error

	// Search matches username, email, first or last name case-insensitively.
	Search(ctx context.Context, query string) ([]domain.DirectoryUser, error)

	// Count returns the number of directory users.
	Count(ctx context.Context) (int, error)

	// SetEnabled enables or disables a directory account.
	SetEnabled(ctx context.Context, username string, enabled bool) error
}
