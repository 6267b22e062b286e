package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/tool"
)

// ToolHandler 工具目录处理器
type ToolHandler struct {
	svc *service.Services
}

// NewToolHandler 创建工具处理器
func NewToolHandler(svc *service.Services) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// ListTools 工具列表
// @Summary      工具列表
// @Description  支持 category/type/team/tag/search 过滤，sort_by/sort_order 排序，page/per_page 分页
// @Tags         工具目录
// @Produce      json
// @Success      200  {object}  Response  "分页结果"
// @Router       /ai-tools [get]
func (h *ToolHandler) ListTools(c *gin.Context) {
	req := tool.ParseListToolsRequest(requestPath(c), c.Request.URL.Query())

	page, err := h.svc.Tool.ListTools(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, page, "AI tools retrieved successfully")
}

// GetTool 工具详情
// @Summary      工具详情
// @Tags         工具目录
// @Produce      json
// @Param        id   path      int       true  "工具ID"
// @Success      200  {object}  Response  "工具"
// @Failure      404  {object}  Response  "工具不存在"
// @Router       /ai-tools/{id} [get]
func (h *ToolHandler) GetTool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.Tool.GetTool(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, t, "AI tool retrieved successfully")
}

// CreateTool 创建工具
// @Summary      创建工具
// @Tags         工具目录
// @Accept       json
// @Produce      json
// @Param        request  body      tool.CreateToolRequest  true  "工具信息"
// @Success      201      {object}  Response                "创建的工具"
// @Failure      422      {object}  Response                "校验失败"
// @Router       /ai-tools [post]
func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req tool.CreateToolRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.Tool.CreateTool(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, t, "AI tool created successfully")
}

// UpdateTool 更新工具，PUT 和 PATCH 都只更新出现的字段
// @Router       /ai-tools/{id} [put]
func (h *ToolHandler) UpdateTool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req tool.UpdateToolRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.Tool.UpdateTool(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, t, "AI tool updated successfully")
}

// DeleteTool 删除工具
// @Router       /ai-tools/{id} [delete]
func (h *ToolHandler) DeleteTool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Tool.DeleteTool(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	Success(c, nil, "AI tool deleted successfully")
}

// ListCategories GET /ai-tools-meta/categories
func (h *ToolHandler) ListCategories(c *gin.Context) {
	values, err := h.svc.Tool.ListCategories(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, values, "Categories retrieved successfully")
}

// ListTeams GET /ai-tools-meta/teams
func (h *ToolHandler) ListTeams(c *gin.Context) {
	values, err := h.svc.Tool.ListTeams(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, values, "Teams retrieved successfully")
}

// ListTags GET /ai-tools-meta/tags
func (h *ToolHandler) ListTags(c *gin.Context) {
	values, err := h.svc.Tool.ListTags(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, values, "Tags retrieved successfully")
}

// SyncRoles 替换工具的角色授权
// PUT /ai-tools/:id/roles
func (h *ToolHandler) SyncRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req tool.SyncRolesRequest
	if !bindJSON(c, &req) {
		return
	}

	roles, err := h.svc.Tool.SyncRoles(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, roles, "Tool roles updated successfully")
}

// GetAccess 当前用户角色对工具的访问级别
// GET /ai-tools/:id/access
func (h *ToolHandler) GetAccess(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.svc.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	level, granted, err := h.svc.Tool.AccessFor(c.Request.Context(), id, user.RoleID)
	if err != nil {
		Error(c, err)
		return
	}

	data := gin.H{
		"ai_tool_id":   id,
		"role":         user.ResolveRole(),
		"granted":      granted,
		"access_level": nil,
		"can_read":     level.Allows(model.AccessRead),
		"can_write":    level.Allows(model.AccessWrite),
		"can_admin":    level.Allows(model.AccessAdmin),
	}
	if granted {
		data["access_level"] = level
	}
	Success(c, data, "Access level retrieved successfully")
}

// requestPath 分页链接使用的基础 URL
func requestPath(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}
