package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/service"
	svctag "github.com/ashwinyue/ai-tools-hub/internal/service/tag"
)

// TagHandler 标签处理器
type TagHandler struct {
	svc *service.Services
}

// NewTagHandler 创建标签处理器
func NewTagHandler(svc *service.Services) *TagHandler {
	return &TagHandler{svc: svc}
}

// CreateTag 创建标签
// @Summary      创建标签
// @Description  创建新标签，颜色默认 #6B7280，图标默认 tag
// @Tags         标签管理
// @Accept       json
// @Produce      json
// @Param        request  body      svctag.CreateTagRequest  true  "标签信息"
// @Success      201      {object}  Response                 "创建的标签"
// @Failure      422      {object}  Response                 "校验失败"
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req svctag.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.svc.Tag.CreateTag(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, tag, "Tag created successfully")
}

// GetTag 获取标签
// @Summary      获取标签
// @Tags         标签管理
// @Produce      json
// @Param        id   path      int       true  "标签ID"
// @Success      200  {object}  Response  "标签详情"
// @Failure      404  {object}  Response  "标签不存在"
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tag, err := h.svc.Tag.GetTag(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, tag, "Tag retrieved successfully")
}

// ListTags 列出标签
// @Summary      列出标签
// @Tags         标签管理
// @Produce      json
// @Param        keyword           query     string  false  "关键词搜索"
// @Param        include_inactive  query     bool    false  "包含停用标签"
// @Success      200               {object}  Response  "标签列表"
// @Router       /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.svc.Tag.ListTags(c.Request.Context(), queryBool(c, "include_inactive"), c.Query("keyword"))
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, tags, "Tags retrieved successfully")
}

// UpdateTag 更新标签
// @Router       /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req svctag.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.svc.Tag.UpdateTag(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, tag, "Tag updated successfully")
}

// DeleteTag 删除标签
// @Router       /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Tag.DeleteTag(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}

	Success(c, nil, "Tag deleted successfully")
}
