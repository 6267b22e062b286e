package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/role"
)

// RoleHandler 角色处理器
type RoleHandler struct {
	svc *service.Services
}

// NewRoleHandler 创建角色处理器
func NewRoleHandler(svc *service.Services) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// ListRoles GET /roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.svc.Role.ListRoles(c.Request.Context(), queryBool(c, "include_inactive"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, roles, "Roles retrieved successfully")
}

// GetRole GET /roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.svc.Role.GetRole(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, r, "Role retrieved successfully")
}

// CreateRole POST /roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req role.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.svc.Role.CreateRole(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, r, "Role created successfully")
}

// UpdateRole PUT /roles/:id
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req role.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.svc.Role.UpdateRole(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, r, "Role updated successfully")
}

// DeleteRole DELETE /roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Role.DeleteRole(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	Success(c, nil, "Role deleted successfully")
}
