package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "TensorFlow", "tensorflow"},
		{"spaces", "GitHub Copilot", "github-copilot"},
		{"punctuation", "  Node.js & Deno!  ", "node-js-deno"},
		{"already slug", "openai-api", "openai-api"},
		{"non ascii only", "日本語", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, SlugPattern.MatchString(got))
			}
		})
	}
}

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		name       string
		role       *Role
		permission string
		want       bool
	}{
		{"nil role", nil, "manage_tools", false},
		{"exact match", &Role{Permissions: []string{"manage_tools"}}, "manage_tools", true},
		{"wildcard", &Role{Permissions: []string{PermissionAll}}, "anything", true},
		{"missing", &Role{Permissions: []string{"view_tools"}}, "manage_tools", false},
		{"empty", &Role{}, "view_tools", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.HasPermission(tt.permission))
		})
	}
}

func TestAccessLevelAllows(t *testing.T) {
	tests := []struct {
		have     AccessLevel
		required AccessLevel
		want     bool
	}{
		{AccessAdmin, AccessRead, true},
		{AccessAdmin, AccessWrite, true},
		{AccessWrite, AccessRead, true},
		{AccessWrite, AccessAdmin, false},
		{AccessRead, AccessWrite, false},
		{AccessRead, AccessRead, true},
		{AccessLevel("owner"), AccessRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.have)+"->"+string(tt.required), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.have.Allows(tt.required))
		})
	}

	assert.True(t, AccessWrite.Valid())
	assert.False(t, AccessLevel("").Valid())
}

func TestUserResolveRole(t *testing.T) {
	u := &User{ID: 1, Name: "a", Email: "a@example.com"}
	info := u.ToUserInfo()
	assert.Nil(t, info.Role.ID)
	assert.Equal(t, UnknownRoleName, info.Role.Name)
	assert.Equal(t, "unknown", info.Role.Slug)

	u.Role = &Role{ID: 7, Name: "Editor", Slug: "editor"}
	info = u.ToUserInfo()
	if assert.NotNil(t, info.Role.ID) {
		assert.Equal(t, uint(7), *info.Role.ID)
	}
	assert.Equal(t, "Editor", info.Role.Name)
}

func TestTagApplyDefaults(t *testing.T) {
	tag := &Tag{Name: "x"}
	tag.ApplyDefaults()
	assert.Equal(t, DefaultTagColor, tag.Color)
	assert.Equal(t, DefaultTagIcon, tag.Icon)

	tag = &Tag{Color: "#000000", Icon: "star"}
	tag.ApplyDefaults()
	assert.Equal(t, "#000000", tag.Color)
	assert.Equal(t, "star", tag.Icon)
}
