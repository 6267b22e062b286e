package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// Service 角色服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建角色服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Slug        string   `json:"slug" validate:"required,max=100,slug"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,min=1,max=100"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateRoleRequest 更新角色请求
type UpdateRoleRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Slug        *string  `json:"slug" validate:"omitnil,max=100,slug"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,min=1,max=100"`
	IsActive    *bool    `json:"is_active"`
}

// ListRoles 列出角色
func (s *Service) ListRoles(ctx context.Context, includeInactive bool) ([]*model.Role, error) {
	roles, err := s.repo.Role.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// GetRole 获取角色
func (s *Service) GetRole(ctx context.Context, id uint) (*model.Role, error) {
	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// CreateRole 创建角色
func (s *Service) CreateRole(ctx context.Context, req *CreateRoleRequest) (*model.Role, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		req.Slug = model.Slugify(req.Name)
	}
	req.Permissions = permissionSet(req.Permissions)
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	role := &model.Role{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Permissions: req.Permissions,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Role.Create(ctx, role); err != nil {
		return nil, mapWriteError(err)
	}
	return role, nil
}

// UpdateRole 更新角色，permissions 出现时整体替换
func (s *Service) UpdateRole(ctx context.Context, id uint, req *UpdateRoleRequest) (*model.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Permissions != nil {
		req.Permissions = permissionSet(req.Permissions)
	}
	if err := types.ValidateStruct(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		role.Slug = *req.Slug
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Permissions != nil {
		role.Permissions = req.Permissions
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.repo.Role.Update(ctx, role); err != nil {
		return nil, mapWriteError(err)
	}
	return role, nil
}

// DeleteRole 删除角色，持有该角色的用户变为无角色
func (s *Service) DeleteRole(ctx context.Context, id uint) error {
	deleted, err := s.repo.Role.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if !deleted {
		return types.ErrNotFound
	}
	return nil
}

// permissionSet 去重，保持顺序
func permissionSet(perms []string) []string {
	seen := make(map[string]bool, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func mapWriteError(err error) error {
	if field, ok := repository.UniqueViolation(err, "slug", "name"); ok {
		if field == "" {
			return fmt.Errorf("%w: %v", types.ErrConflict, err)
		}
		return types.FieldError(field, types.TakenMessage(field))
	}
	return fmt.Errorf("failed to save role: %w", err)
}
