package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// Service 分类服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建分类服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"omitempty,max=255"`
	Color       string `json:"color" validate:"omitempty,max=20"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,max=100,slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitnil,max=255"`
	Color       *string `json:"color" validate:"omitnil,max=20"`
	IsActive    *bool   `json:"is_active"`
}

// ListCategories 列出分类
func (s *Service) ListCategories(ctx context.Context, includeInactive bool) ([]*model.Category, error) {
	categories, err := s.repo.Category.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory 获取分类
func (s *Service) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// CreateCategory 创建分类
func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		req.Slug = model.Slugify(req.Name)
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		return nil, mapWriteError(err)
	}
	return category, nil
}

// UpdateCategory 更新分类
func (s *Service) UpdateCategory(ctx context.Context, id uint, req *UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Category.Update(ctx, category); err != nil {
		return nil, mapWriteError(err)
	}
	return category, nil
}

// DeleteCategory 删除分类，工具的 category 字符串不受影响
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	deleted, err := s.repo.Category.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return types.ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if field, ok := repository.UniqueViolation(err, "slug", "name"); ok {
		if field == "" {
			return fmt.Errorf("%w: %v", types.ErrConflict, err)
		}
		return types.FieldError(field, types.TakenMessage(field))
	}
	return fmt.Errorf("failed to save category: %w", err)
}
