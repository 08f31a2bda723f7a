package sqlite

import (
	"context"
	"testing"

	"github.com/auslane/authgate/internal/gateway/domain"
	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestMFARoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.MFA().Put(ctx, domain.MFARecord{Username: "alice", Secret: "JBSWY3DP", Enabled: false}))

	rec, err := s.MFA().Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "JBSWY3DP", rec.Secret)
	require.False(t, rec.Enabled)

	// Re-registering rotates the secret in place.
	require.NoError(t, s.MFA().Put(ctx, domain.MFARecord{Username: "alice", Secret: "NEWSECRET", Enabled: true}))

	rec, err = s.MFA().Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "NEWSECRET", rec.Secret)
	require.True(t, rec.Enabled)
}

func TestMFASetEnabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.MFA().Put(ctx, domain.MFARecord{Username: "bob", Secret: "S"}))
	require.NoError(t, s.MFA().SetEnabled(ctx, "bob", true))

	rec, err := s.MFA().Get(ctx, "bob")
	require.NoError(t, err)
	require.True(t, rec.Enabled)

	require.ErrorIs(t, s.MFA().SetEnabled(ctx, "ghost", true), store.ErrNotFound)
}

func TestMFADelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.MFA().Put(ctx, domain.MFARecord{Username: "carol", Secret: "S"}))
	require.NoError(t, s.MFA().Delete(ctx, "carol"))

	_, err := s.MFA().Get(ctx, "carol")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Absent rows are not an error.
	require.NoError(t, s.MFA().Delete(ctx, "carol"))
}

func TestUsersCreateAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.DirectoryUser{
		ID:           "01HZX0000000000000000000AA",
		Username:     "remoteuser",
		Email:        "remote@example.com",
		PasswordHash: "$argon2id$...",
		FirstName:    "Remote",
		LastName:     "User",
		Enabled:      true,
	}
	require.NoError(t, s.Users().Create(ctx, u))

	got, err := s.Users().GetByUsername(ctx, "remoteuser")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.Email, got.Email)
	require.True(t, got.Enabled)
	require.False(t, got.CreatedAt.IsZero())

	byEmail, err := s.Users().GetByEmail(ctx, "remote@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	dup := u
	dup.ID = "01HZX0000000000000000000AB"
	require.ErrorIs(t, s.Users().Create(ctx, dup), store.ErrAlreadyExists)
}

func TestUsersSearchAndCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	for _, u := range []domain.DirectoryUser{
		{ID: "1", Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Smith", PasswordHash: "h", Enabled: true},
		{ID: "2", Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "Smithson", PasswordHash: "h", Enabled: true},
		{ID: "3", Username: "carol", Email: "carol@example.com", FirstName: "Carol", LastName: "Jones", PasswordHash: "h", Enabled: false},
	} {
		require.NoError(t, s.Users().Create(ctx, u))
	}

	smiths, err := s.Users().Search(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, smiths, 2)
	require.Equal(t, "alice", smiths[0].Username)
	require.Equal(t, "bob", smiths[1].Username)

	count, err := s.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.NoError(t, s.Users().SetEnabled(ctx, "carol", true))
	got, err := s.Users().GetByUsername(ctx, "carol")
	require.NoError(t, err)
	require.True(t, got.Enabled)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.MFA().Put(ctx, domain.MFARecord{Username: "dave", Secret: "S"}); err != nil {
			return err
		}
		return context.Canceled
	})
	require.Error(t, err)

	_, err = s.MFA().Get(ctx, "dave")
	require.ErrorIs(t, err, store.ErrNotFound)
}
