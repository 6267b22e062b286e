package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// Service 标签服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建标签服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Slug        string `json:"slug" validate:"required,max=50,slug"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,max=20"`
	Icon        string `json:"icon" validate:"omitempty,max=255"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateTagRequest 更新标签请求
type UpdateTagRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=50"`
	Slug        *string `json:"slug" validate:"omitnil,max=50,slug"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"omitnil,max=20"`
	Icon        *string `json:"icon" validate:"omitnil,max=255"`
	IsActive    *bool   `json:"is_active"`
}

// CreateTag 创建标签
func (s *Service) CreateTag(ctx context.Context, req *CreateTagRequest) (*model.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		req.Slug = model.Slugify(req.Name)
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	tag := &model.Tag{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	tag.ApplyDefaults()

	if err := s.repo.Tag.Create(ctx, tag); err != nil {
		return nil, mapWriteError(err)
	}
	return tag, nil
}

// GetTag 获取标签
func (s *Service) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.repo.Tag.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return tag, nil
}

// ListTags 列出标签，keyword 按名称模糊匹配
func (s *Service) ListTags(ctx context.Context, includeInactive bool, keyword string) ([]*model.Tag, error) {
	tags, err := s.repo.Tag.List(ctx, includeInactive, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag 更新标签
func (s *Service) UpdateTag(ctx context.Context, id uint, req *UpdateTagRequest) (*model.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		tag.Slug = *req.Slug
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.Icon != nil {
		tag.Icon = *req.Icon
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}
	tag.ApplyDefaults()

	if err := s.repo.Tag.Update(ctx, tag); err != nil {
		return nil, mapWriteError(err)
	}
	return tag, nil
}

// DeleteTag 删除标签
func (s *Service) DeleteTag(ctx context.Context, id uint) error {
	deleted, err := s.repo.Tag.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
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
	return fmt.Errorf("failed to save tag: %w", err)
}
