package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/ai-tools-hub/internal/service"
	"github.com/ashwinyue/ai-tools-hub/internal/service/category"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	svc *service.Services
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(svc *service.Services) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ListCategories GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Category.ListCategories(c.Request.Context(), queryBool(c, "include_inactive"))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, categories, "Categories retrieved successfully")
}

// GetCategory GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Category.GetCategory(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, cat, "Category retrieved successfully")
}

// CreateCategory POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req category.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Category.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, cat, "Category created successfully")
}

// UpdateCategory PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req category.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Category.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, cat, "Category updated successfully")
}

// DeleteCategory DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Category.DeleteCategory(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	Success(c, nil, "Category deleted successfully")
}

func queryBool(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}
