package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// DefaultPassword fixture 用户的明文密码
const DefaultPassword = "secret-password"

// CreateRole 创建角色
func CreateRole(t *testing.T, db *gorm.DB, slug string, permissions ...string) *model.Role {
	t.Helper()
	role := &model.Role{
		Name:        slug,
		Slug:        slug,
		Permissions: permissions,
		IsActive:    true,
	}
	require.NoError(t, db.Create(role).Error)
	return role
}

// CreateUser 创建用户，密码为 DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, email string, role *model.Role) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     email,
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if role != nil {
		user.RoleID = &role.ID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(user).Error)
	user.Role = role
	return user
}

// CreateTool 创建工具，opts 可修改默认字段
func CreateTool(t *testing.T, db *gorm.DB, owner *model.User, name string, opts ...func(*model.AITool)) *model.AITool {
	t.Helper()
	rating := 4
	tool := &model.AITool{
		Name:        name,
		Slug:        model.Slugify(name),
		Description: name + " description",
		Status:      model.ToolStatusActive,
		ToolType:    model.ToolTypeLibrary,
		Category:    "General",
		Team:        "Platform",
		Tags:        []string{"general"},
		Rating:      &rating,
		IsActive:    true,
		UserID:      owner.ID,
	}
	for _, opt := range opts {
		opt(tool)
	}
	require.NoError(t, db.Omit(clause.Associations).Create(tool).Error)
	return tool
}
