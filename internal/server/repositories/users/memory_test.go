package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/todosync/internal/common"
	"github.com/dmitrijs2005/todosync/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: []byte("h")})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrEmailInUse)

	require.NoError(t, repo.SetDisplayName(ctx, u.ID, "alice"))
	require.ErrorIs(t, repo.SetDisplayName(ctx, "ghost", "x"), common.ErrorNotFound)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "alice", *got.DisplayName)

	// callers get copies
	*got.DisplayName = "mallory"
	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", *again.DisplayName)

	_, err = repo.GetByID(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
