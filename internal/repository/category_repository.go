package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// CategoryRepository 分类数据访问
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create 创建分类
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID 获取分类
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FirstOrCreateByName 按名称查找，不存在则创建
func (r *CategoryRepository) FirstOrCreateByName(ctx context.Context, name, slug string) (*model.Category, error) {
	category := &model.Category{Name: name, Slug: slug, IsActive: true}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(category).Error
	if err != nil {
		return nil, err
	}
	var stored model.Category
	if err := r.db.WithContext(ctx).Where("name = ? OR slug = ?", name, slug).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// List 列出分类，默认按名称排序
func (r *CategoryRepository) List(ctx context.Context, includeInactive bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Update 更新分类
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete 删除分类
func (r *CategoryRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.AIToolCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
