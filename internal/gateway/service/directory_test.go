package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/auslane/authgate/internal/gateway/store"
	"github.com/auslane/authgate/internal/gateway/store/drivers/memory"
	"github.com/auslane/authgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestCreateUserHashesPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &DirectoryService{Store: memory.NewStore()}

	user, err := svc.CreateUser(ctx, "alice", "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cret", user.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("s3cret", user.PasswordHash))
	require.True(t, user.Enabled)
}

func TestCreateUserDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &DirectoryService{Store: memory.NewStore()}

	_, err := svc.CreateUser(ctx, "bob", "bob@example.com", "pw", "", "")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "bob", "other@example.com", "pw", "", "")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSearchAndCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &DirectoryService{Store: memory.NewStore()}

	_, err := svc.CreateUser(ctx, "alice", "alice@example.com", "pw", "Alice", "Smith")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "bob", "bob@example.com", "pw", "Bob", "Jones")
	require.NoError(t, err)

	found, err := svc.Search(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "alice", found[0].Username)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestGetByUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &DirectoryService{Store: memory.NewStore()}

	created, err := svc.CreateUser(ctx, "carol", "carol@example.com", "pw", "Carol", "White")
	require.NoError(t, err)

	got, err := svc.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}
