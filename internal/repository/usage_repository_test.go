package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/testutil"
)

func TestUsageRepositoryIncrement(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", nil)
	tool := testutil.CreateTool(t, db, user, "Docker")

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	log, err := repos.Usage.Increment(ctx, user.ID, tool.ID, first, map[string]interface{}{"source": "cli"})
	require.NoError(t, err)
	assert.Equal(t, 1, log.UsageCount)

	second := first.Add(time.Hour)
	log, err = repos.Usage.Increment(ctx, user.ID, tool.ID, second, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, log.UsageCount)
	require.NotNil(t, log.LastUsedAt)
	assert.True(t, log.LastUsedAt.Equal(second))
	assert.Equal(t, "cli", log.Metadata["source"], "nil metadata keeps the stored value")

	count, err := repos.Usage.CountForTool(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	logs, err := repos.Usage.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].AITool)
	assert.Equal(t, "Docker", logs[0].AITool.Name)
}

func TestUsageRepositoryToggleFavorite(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com", nil)
	bob := testutil.CreateUser(t, db, "bob@example.com", nil)
	tool := testutil.CreateTool(t, db, alice, "Figma")

	favorited, err := repos.Usage.ToggleFavorite(ctx, alice.ID, tool.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = repos.Usage.ToggleFavorite(ctx, bob.ID, tool.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	count, err := repos.Usage.CountFavoritesForTool(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	favorited, err = repos.Usage.ToggleFavorite(ctx, alice.ID, tool.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	favorites, err := repos.Usage.ListFavorites(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	favorites, err = repos.Usage.ListFavorites(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, tool.ID, favorites[0].AIToolID)
}

func TestUsageRepositoryAddFavoriteExistingPair(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", nil)
	tool := testutil.CreateTool(t, db, user, "Postman")

	inserted, err := repos.Usage.AddFavorite(ctx, user.ID, tool.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	// 另一个请求先插入了同一对
	inserted, err = repos.Usage.AddFavorite(ctx, user.ID, tool.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repos.Usage.CountFavoritesForTool(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
