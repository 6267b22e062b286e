package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// RoleRepository 角色数据访问
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create 创建角色
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// GetByID 获取角色
func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetBySlug 根据 slug 获取角色
func (r *RoleRepository) GetBySlug(ctx context.Context, slug string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CountByIDs 统计存在的角色数量
func (r *RoleRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Role{}).Where("id IN ?", dedupe(ids)).Count(&count).Error
	return count, err
}

// List 列出角色
func (r *RoleRepository) List(ctx context.Context, includeInactive bool) ([]*model.Role, error) {
	var roles []*model.Role
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&roles).Error
	return roles, err
}

// Update 更新角色
func (r *RoleRepository) Update(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// Delete 删除角色，用户的 role_id 置空
func (r *RoleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.AIToolRole{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Role{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
