package usage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
	"github.com/ashwinyue/ai-tools-hub/internal/testutil"
)

func TestRecordUsage(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewService(repository.NewRepositories(db))
	ctx := context.Background()

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	user := testutil.CreateUser(t, db, "user@example.com", nil)
	docker := testutil.CreateTool(t, db, user, "Docker")
	figma := testutil.CreateTool(t, db, user, "Figma")

	row, err := svc.RecordUsage(ctx, user.ID, docker.ID, map[string]interface{}{"source": "web"})
	require.NoError(t, err)
	assert.Equal(t, 1, row.UsageCount)

	clock = clock.Add(time.Minute)
	_, err = svc.RecordUsage(ctx, user.ID, figma.ID, nil)
	require.NoError(t, err)

	clock = clock.Add(time.Minute)
	row, err = svc.RecordUsage(ctx, user.ID, docker.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, row.UsageCount)

	logs, err := svc.ListUsage(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, docker.ID, logs[0].AIToolID, "most recent first")
	assert.Equal(t, figma.ID, logs[1].AIToolID)

	_, err = svc.RecordUsage(ctx, user.ID, 9999, nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestToggleFavorite(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewService(repository.NewRepositories(db))
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", nil)
	tool := testutil.CreateTool(t, db, user, "Docker")

	res, err := svc.ToggleFavorite(ctx, user.ID, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, &FavoriteResult{ToolID: tool.ID, Favorited: true, Count: 1}, res)

	favorites, err := svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].AITool)
	assert.Equal(t, "Docker", favorites[0].AITool.Name)

	res, err = svc.ToggleFavorite(ctx, user.ID, tool.ID)
	require.NoError(t, err)
	assert.False(t, res.Favorited)
	assert.Zero(t, res.Count)

	_, err = svc.ToggleFavorite(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
