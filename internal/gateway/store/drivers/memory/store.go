// Package memory provides a map-backed Store for tests and single-process
// deployments. A single mutex guards all state, which makes every
// read-modify-write sequence per username trivially linearizable.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
)

type Store struct {
	mu    sync.Mutex
	mfa   map[string]domain.MFARecord
	users map[string]domain.DirectoryUser // keyed by username
}

func NewStore() *Store {
	return &Store{
		mfa:   make(map[string]domain.MFARecord),
		users: make(map[string]domain.DirectoryUser),
	}
}

func (s *Store) MFA() store.MFA     { return &mfaRepo{s: s} }
func (s *Store) Users() store.Users { return &usersRepo{s: s} }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Tx returns a transaction view. The memory driver holds the store lock for
// the lifetime of the transaction, so transactional sequences are serialized
// the same way single operations are.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &txStore{s: s}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// txStore operates on the already-locked store. Mutations apply immediately;
// Commit/Rollback only release the lock, so a failed fn leaves partial writes
// behind. Acceptable for the driver's test and single-process use.
type txStore struct {
	s    *Store
	done bool
}

func (t *txStore) MFA() store.MFA     { return &mfaRepo{s: t.s, locked: true} }
func (t *txStore) Users() store.Users { return &usersRepo{s: t.s, locked: true} }

func (t *txStore) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Rollback() error { return t.Commit() }

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return ctx.Err() }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errors.New("memory: nested transactions are not supported")
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errors.New("memory: nested transactions are not supported")
}

type mfaRepo struct {
	s      *Store
	locked bool
}

func (r *mfaRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *mfaRepo) Get(ctx context.Context, username string) (domain.MFARecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MFARecord{}, err
	}
	defer r.lock()()

	rec, ok := r.s.mfa[username]
	if !ok {
		return domain.MFARecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (r *mfaRepo) Put(ctx context.Context, rec domain.MFARecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.lock()()

	r.s.mfa[rec.Username] = rec
	return nil
}

func (r *mfaRepo) SetEnabled(ctx context.Context, username string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.lock()()

	rec, ok := r.s.mfa[username]
	if !ok {
		return store.ErrNotFound
	}
	rec.Enabled = enabled
	r.s.mfa[username] = rec
	return nil
}

func (r *mfaRepo) Delete(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.lock()()

	delete(r.s.mfa, username)
	return nil
}

type usersRepo struct {
	s      *Store
	locked bool
}

func (r *usersRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.DirectoryUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.DirectoryUser{}, err
	}
	defer r.lock()()

	u, ok := r.s.users[username]
	if !ok {
		return domain.DirectoryUser{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.DirectoryUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.DirectoryUser{}, err
	}
	defer r.lock()()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.DirectoryUser{}, store.ErrNotFound
}

func (r *usersRepo) Create(ctx context.Context, u domain.DirectoryUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.lock()()

	if _, exists := r.s.users[u.Username]; exists {
		return store.ErrAlreadyExists
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.Username] = u
	return nil
}

func (r *usersRepo) Search(ctx context.Context, query string) ([]domain.DirectoryUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.lock()()

	needle := strings.ToLower(strings.TrimSpace(query))
	var result []domain.DirectoryUser
	for _, u := range r.s.users {
		haystack := strings.ToLower(u.Username + " " + u.Email + " " + u.FirstName + " " + u.LastName)
		if strings.Contains(haystack, needle) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer r.lock()()

	return len(r.s.users), nil
}

func (r *usersRepo) SetEnabled(ctx context.Context, username string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.lock()()

	u, ok := r.s.users[username]
	if !ok {
		return store.ErrNotFound
	}
	u.Enabled = enabled
	u.UpdatedAt = time.Now().UTC()
	r.s.users[username] = u
	return nil
}
