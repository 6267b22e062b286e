package model

import "time"

// UnknownRoleName 用户没有角色时的占位名称
const UnknownRoleName = "Unknown"

// User 用户
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Email           string     `gorm:"uniqueIndex:idx_users_email;size:255;not null" json:"email"`
	Password        string     `gorm:"size:255;not null" json:"-"`
	RoleID          *uint      `gorm:"index" json:"role_id"`
	IsActive        bool       `gorm:"not null" json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Role *Role `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// RoleInfo 对外统一的角色结构，始终是对象而不是字符串
type RoleInfo struct {
	ID   *uint  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UserInfo 用户信息（不含敏感数据）
type UserInfo struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            RoleInfo   `json:"role"`
	IsActive        bool       `json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
}

// ResolveRole 解析角色，缺失时返回 Unknown
func (u *User) ResolveRole() RoleInfo {
	if u.Role == nil {
		return RoleInfo{Name: UnknownRoleName, Slug: "unknown"}
	}
	id := u.Role.ID
	return RoleInfo{ID: &id, Name: u.Role.Name, Slug: u.Role.Slug}
}

// ToUserInfo 转换为 UserInfo
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.ResolveRole(),
		IsActive:        u.IsActive,
		LastLoginAt:     u.LastLoginAt,
		EmailVerifiedAt: u.EmailVerifiedAt,
	}
}
