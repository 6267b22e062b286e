package handler

import (
	"github.com/ashwinyue/ai-tools-hub/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Tool     *ToolHandler
	Auth     *AuthHandler
	Category *CategoryHandler
	Tag      *TagHandler
	Role     *RoleHandler
	Usage    *UsageHandler
	System   *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Tool:     NewToolHandler(svc),
		Auth:     NewAuthHandler(svc),
		Category: NewCategoryHandler(svc),
		Tag:      NewTagHandler(svc),
		Role:     NewRoleHandler(svc),
		Usage:    NewUsageHandler(svc),
		System:   NewSystemHandler(svc),
	}
}
