package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB       *gorm.DB // 直接访问数据库
	Tool     *ToolRepository
	Category *CategoryRepository
	Tag      *TagRepository
	Role     *RoleRepository
	Auth     *AuthRepository
	Usage    *UsageRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Tool:     NewToolRepository(db),
		Category: NewCategoryRepository(db),
		Tag:      NewTagRepository(db),
		Role:     NewRoleRepository(db),
		Auth:     NewAuthRepository(db),
		Usage:    NewUsageRepository(db),
	}
}
