package tag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/tag"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
	"github.com/ashwinyue/ai-tools-hub/internal/testutil"
)

func newService(t *testing.T) *tag.Service {
	t.Helper()
	return tag.NewService(repository.NewRepositories(testutil.NewTestDB(t)))
}

func TestCreateTag(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateTag(ctx, &tag.CreateTagRequest{Name: "Machine Learning"})
	require.NoError(t, err)
	assert.Equal(t, "machine-learning", created.Slug)
	assert.Equal(t, model.DefaultTagColor, created.Color)
	assert.Equal(t, model.DefaultTagIcon, created.Icon)
	assert.True(t, created.IsActive)

	custom, err := svc.CreateTag(ctx, &tag.CreateTagRequest{Name: "llm", Color: "#8B5CF6", Icon: "sparkles"})
	require.NoError(t, err)
	assert.Equal(t, "#8B5CF6", custom.Color)
	assert.Equal(t, "sparkles", custom.Icon)

	_, err = svc.CreateTag(ctx, &tag.CreateTagRequest{Name: "Machine Learning"})
	ve, ok := types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("name") || ve.Has("slug"))

	_, err = svc.CreateTag(ctx, &tag.CreateTagRequest{Name: "this tag name is far too long to fit in fifty characters"})
	ve, ok = types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("name"))
}

func TestListAndUpdateTags(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	inactive := false
	for _, name := range []string{"python", "pytorch", "design"} {
		_, err := svc.CreateTag(ctx, &tag.CreateTagRequest{Name: name})
		require.NoError(t, err)
	}
	archived, err := svc.CreateTag(ctx, &tag.CreateTagRequest{Name: "pyramid", IsActive: &inactive})
	require.NoError(t, err)

	tags, err := svc.ListTags(ctx, false, " py ")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "python", tags[0].Name)
	assert.Equal(t, "pytorch", tags[1].Name)

	tags, err = svc.ListTags(ctx, true, "py")
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	empty := ""
	active := true
	updated, err := svc.UpdateTag(ctx, archived.ID, &tag.UpdateTagRequest{Color: &empty, IsActive: &active})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, model.DefaultTagColor, updated.Color)

	require.NoError(t, svc.DeleteTag(ctx, archived.ID))
	_, err = svc.GetTag(ctx, archived.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteTag(ctx, archived.ID), types.ErrNotFound)
}
