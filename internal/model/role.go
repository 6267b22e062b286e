package model

import (
	"time"

	"gorm.io/datatypes"
)

// PermissionAll 通配权限
const PermissionAll = "*"

// Role 角色
type Role struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"size:100;not null;uniqueIndex:idx_roles_name" json:"name"`
	Slug        string                      `gorm:"size:100;not null;uniqueIndex:idx_roles_slug" json:"slug"`
	Description string                      `gorm:"type:text" json:"description"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	IsActive    bool                        `gorm:"index;not null" json:"is_active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}

// HasPermission 精确匹配或通配 *
func (r *Role) HasPermission(permission string) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Permissions {
		if p == PermissionAll || p == permission {
			return true
		}
	}
	return false
}

// AccessLevel 角色对工具的访问级别
type AccessLevel string

const (
	AccessRead  AccessLevel = "read"
	AccessWrite AccessLevel = "write"
	AccessAdmin AccessLevel = "admin"
)

var accessRank = map[AccessLevel]int{
	AccessRead:  1,
	AccessWrite: 2,
	AccessAdmin: 3,
}

// Valid 是否为已知访问级别
func (a AccessLevel) Valid() bool {
	_, ok := accessRank[a]
	return ok
}

// Allows admin 包含 write，write 包含 read
func (a AccessLevel) Allows(required AccessLevel) bool {
	have, ok := accessRank[a]
	if !ok {
		return false
	}
	return have >= accessRank[required]
}

// AIToolRole 工具-角色关联表，携带访问级别
type AIToolRole struct {
	ID                uint                        `gorm:"primaryKey" json:"id"`
	AIToolID          uint                        `gorm:"column:ai_tool_id;not null;uniqueIndex:idx_ai_tool_role" json:"ai_tool_id"`
	RoleID            uint                        `gorm:"not null;uniqueIndex:idx_ai_tool_role;index" json:"role_id"`
	AccessLevel       AccessLevel                 `gorm:"size:20;not null" json:"access_level"`
	CustomPermissions datatypes.JSONSlice[string] `json:"custom_permissions"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`

	AITool *AITool `gorm:"foreignKey:AIToolID;constraint:OnDelete:CASCADE" json:"-"`
	Role   *Role   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (AIToolRole) TableName() string {
	return "ai_tool_role"
}

// RoleAccess 工具详情中展示的角色授权
type RoleAccess struct {
	RoleID            uint        `json:"role_id"`
	Name              string      `json:"name"`
	Slug              string      `json:"slug"`
	AccessLevel       AccessLevel `json:"access_level"`
	CustomPermissions []string    `json:"custom_permissions"`
}
