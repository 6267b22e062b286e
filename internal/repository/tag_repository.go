package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
)

// TagRepository 标签仓库
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create 创建标签
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// Update 更新标签
func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// GetByID 根据 ID 获取标签
func (r *TagRepository) GetByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FirstOrCreateByNames 按名称批量查找或创建标签
func (r *TagRepository) FirstOrCreateByNames(ctx context.Context, names []string, slugify func(string) string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			slug := slugify(name)
			tag := &model.Tag{Name: name, Slug: slug, IsActive: true}
			tag.ApplyDefaults()
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(tag).Error; err != nil {
				return fmt.Errorf("failed to create tag %s: %w", name, err)
			}
			var stored model.Tag
			if err := tx.Where("name = ? OR slug = ?", name, slug).First(&stored).Error; err != nil {
				return fmt.Errorf("failed to load tag %s: %w", name, err)
			}
			tags = append(tags, &stored)
		}
		return nil
	})
	return tags, err
}

// Delete 删除标签
func (r *TagRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.AIToolTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Tag{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// List 列出标签
func (r *TagRepository) List(ctx context.Context, includeInactive bool, keyword string) ([]*model.Tag, error) {
	var tags []*model.Tag
	query := r.db.WithContext(ctx).Model(&model.Tag{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	err := query.Order("name ASC").Find(&tags).Error
	return tags, err
}
