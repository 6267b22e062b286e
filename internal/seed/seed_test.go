package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/seed"
	"github.com/ashwinyue/ai-tools-hub/internal/testutil"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := seed.Default()
	require.NoError(t, err)
	assert.Len(t, ds.Roles, 3)
	assert.Len(t, ds.Users, 3)
	assert.Len(t, ds.Tools, 8)
}

func TestParseRepairsHandwrittenJSON(t *testing.T) {
	raw := `{
		// hand edited
		"roles": [{"name": "Admin", "permissions": ["*"], "is_active": true},],
		"users": [{"name": "Root", "email": "root@example.com", "password": "pw", "role": "admin"}],
		"tools": [{"name": "Local Tool", "description": "x", "creator": "root@example.com",}],
	}`
	ds, err := seed.Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, ds.Roles, 1)
	assert.Equal(t, "admin", ds.Roles[0].Slug)
	require.Len(t, ds.Tools, 1)
	assert.Equal(t, "local-tool", ds.Tools[0].Slug)
}

func TestParseRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown role", `{"users": [{"email": "a@example.com", "password": "pw", "role": "ghost"}]}`},
		{"missing password", `{"users": [{"email": "a@example.com"}]}`},
		{"unknown creator", `{"tools": [{"name": "T", "creator": "nobody@example.com"}]}`},
		{"bad grant", `{"roles": [{"name": "r"}], "users": [{"email": "a@example.com", "password": "pw"}],
			"tools": [{"name": "T", "creator": "a@example.com", "role_access": [{"role": "r", "access_level": "owner"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	_, err := seed.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"roles": [{"name": "Ops"}]}`), 0o600))
	ds, err := seed.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ops", ds.Roles[0].Slug)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	ds, err := seed.Default()
	require.NoError(t, err)

	require.NoError(t, seed.Seed(ctx, db, ds, bcrypt.MinCost))
	require.NoError(t, seed.Seed(ctx, db, ds, bcrypt.MinCost))

	counts := map[string]int64{}
	for name, m := range map[string]interface{}{
		"roles": &model.Role{}, "users": &model.User{}, "tools": &model.AITool{}, "grants": &model.AIToolRole{},
	} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		counts[name] = n
	}
	assert.Equal(t, map[string]int64{"roles": 3, "users": 3, "tools": 8, "grants": 2}, counts)

	repos := repository.NewRepositories(db)
	admin, err := repos.Auth.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin.Role)
	assert.True(t, admin.Role.HasPermission("manage_taxonomy"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("password")))

	var tensorflow model.AITool
	require.NoError(t, db.Where("slug = ?", "tensorflow").First(&tensorflow).Error)
	categories, err := repos.Tool.CategoriesFor(ctx, tensorflow.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "machine-learning", categories[0].Slug)
	tags, err := repos.Tool.TagsFor(ctx, tensorflow.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	var python model.Tag
	require.NoError(t, db.Where("slug = ?", "python").First(&python).Error)
	assert.Equal(t, "#3776AB", python.Color, "seeded tag attributes win over mirrored defaults")
}
