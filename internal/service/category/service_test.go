package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/category"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
	"github.com/ashwinyue/ai-tools-hub/internal/testutil"
)

func TestCategoryLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	svc := category.NewService(repos)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &category.CreateCategoryRequest{Name: "  Data Science ", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "Data Science", created.Name)
	assert.Equal(t, "data-science", created.Slug)
	assert.True(t, created.IsActive)

	_, err = svc.CreateCategory(ctx, &category.CreateCategoryRequest{Name: "Data Science 2", Slug: "data-science"})
	ve, ok := types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, []string{"The slug has already been taken."}, ve.Fields["slug"])

	_, err = svc.CreateCategory(ctx, &category.CreateCategoryRequest{Name: "Bad", Slug: "Not A Slug"})
	ve, ok = types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("slug"))

	_, err = svc.CreateCategory(ctx, &category.CreateCategoryRequest{})
	ve, ok = types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("name"))

	inactive := false
	hidden, err := svc.CreateCategory(ctx, &category.CreateCategoryRequest{Name: "Archive", IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	all, err := svc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	desc := "Notebooks and pipelines"
	updated, err := svc.UpdateCategory(ctx, created.ID, &category.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, "Data Science", updated.Name)

	name := "Archive"
	_, err = svc.UpdateCategory(ctx, created.ID, &category.UpdateCategoryRequest{Name: &name})
	ve, ok = types.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, ve.Has("name"))

	require.NoError(t, svc.DeleteCategory(ctx, hidden.ID))
	_, err = svc.GetCategory(ctx, hidden.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, hidden.ID), types.ErrNotFound)
	_, err = svc.UpdateCategory(ctx, hidden.ID, &category.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteCategoryKeepsToolField(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repository.NewRepositories(db)
	svc := category.NewService(repos)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com", nil)
	tool := testutil.CreateTool(t, db, owner, "Jupyter", func(t *model.AITool) { t.Category = "Data Science" })
	c, err := repos.Category.FirstOrCreateByName(ctx, "Data Science", "data-science")
	require.NoError(t, err)
	require.NoError(t, repos.Tool.SetCategories(ctx, tool.ID, []uint{c.ID}))

	require.NoError(t, svc.DeleteCategory(ctx, c.ID))

	linked, err := repos.Tool.CategoriesFor(ctx, tool.ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	stored, err := repos.Tool.GetByID(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, "Data Science", stored.Category)
}
