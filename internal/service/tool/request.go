package tool

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ashwinyue/ai-tools-hub/internal/model"
	"github.com/ashwinyue/ai-tools-hub/internal/service/types"
)

// ListToolsRequest 列表查询参数
type ListToolsRequest struct {
	Category        string
	Type            string
	Team            string
	Tag             string
	Search          string
	IncludeInactive bool
	SortBy          string
	SortOrder       string
	Page            types.PageRequest
}

// ParseListToolsRequest 从查询串解析列表参数
func ParseListToolsRequest(baseURL string, q url.Values) *ListToolsRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	req := &ListToolsRequest{
		Category:        q.Get("category"),
		Type:            q.Get("type"),
		Team:            q.Get("team"),
		Tag:             q.Get("tag"),
		Search:          strings.TrimSpace(q.Get("search")),
		IncludeInactive: parseBool(q.Get("include_inactive")),
		SortBy:          q.Get("sort_by"),
		SortOrder:       strings.ToLower(q.Get("sort_order")),
		Page: types.PageRequest{
			Page:    page,
			PerPage: perPage,
			BaseURL: baseURL,
			Query:   q,
		},
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	if req.SortOrder != "asc" {
		req.SortOrder = "desc"
	}
	return req
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// CreateToolRequest 创建工具请求
type CreateToolRequest struct {
	Name             string                 `json:"name" validate:"required,max=255"`
	Slug             string                 `json:"slug" validate:"omitempty,max=255,slug"`
	Description      string                 `json:"description" validate:"required"`
	LongDescription  string                 `json:"long_description"`
	ToolType         string                 `json:"tool_type" validate:"required,oneof=library application framework api service"`
	Category         string                 `json:"category" validate:"omitempty,max=100"`
	URL              string                 `json:"url" validate:"omitempty,url"`
	DocumentationURL string                 `json:"documentation_url" validate:"omitempty,url"`
	GithubURL        string                 `json:"github_url" validate:"omitempty,url"`
	AuthorName       string                 `json:"author_name" validate:"omitempty,max=255"`
	AuthorEmail      string                 `json:"author_email" validate:"omitempty,email,max=255"`
	Team             string                 `json:"team" validate:"omitempty,max=100"`
	Tags             []string               `json:"tags" validate:"omitempty,dive,max=50"`
	UseCase          string                 `json:"use_case"`
	Pros             string                 `json:"pros"`
	Cons             string                 `json:"cons"`
	Rating           *int                   `json:"rating" validate:"omitnil,min=1,max=5"`
	Icon             string                 `json:"icon" validate:"omitempty,max=255"`
	Color            string                 `json:"color" validate:"omitempty,max=20"`
	Version          string                 `json:"version" validate:"omitempty,max=50"`
	Status           string                 `json:"status" validate:"omitempty,oneof=active inactive maintenance beta"`
	IsActive         *bool                  `json:"is_active"`
	RequiresAuth     bool                   `json:"requires_auth"`
	APIKeyRequired   bool                   `json:"api_key_required"`
	UsageLimit       *int                   `json:"usage_limit" validate:"omitnil,min=0"`
	Metadata         map[string]interface{} `json:"metadata"`
	UserID           uint                   `json:"user_id" validate:"required"`
}

// UpdateToolRequest 更新工具请求，只校验出现的字段
type UpdateToolRequest struct {
	Name             *string                `json:"name" validate:"omitnil,min=1,max=255"`
	Slug             *string                `json:"slug" validate:"omitnil,max=255,slug"`
	Description      *string                `json:"description" validate:"omitnil,min=1"`
	LongDescription  *string                `json:"long_description"`
	ToolType         *string                `json:"tool_type" validate:"omitnil,oneof=library application framework api service"`
	Category         *string                `json:"category" validate:"omitnil,max=100"`
	URL              *string                `json:"url" validate:"omitnil,omitempty,url"`
	DocumentationURL *string                `json:"documentation_url" validate:"omitnil,omitempty,url"`
	GithubURL        *string                `json:"github_url" validate:"omitnil,omitempty,url"`
	AuthorName       *string                `json:"author_name" validate:"omitnil,max=255"`
	AuthorEmail      *string                `json:"author_email" validate:"omitnil,omitempty,email,max=255"`
	Team             *string                `json:"team" validate:"omitnil,max=100"`
	Tags             []string               `json:"tags" validate:"omitempty,dive,max=50"`
	UseCase          *string                `json:"use_case"`
	Pros             *string                `json:"pros"`
	Cons             *string                `json:"cons"`
	Rating           *int                   `json:"rating" validate:"omitnil,min=1,max=5"`
	Icon             *string                `json:"icon" validate:"omitnil,max=255"`
	Color            *string                `json:"color" validate:"omitnil,max=20"`
	Version          *string                `json:"version" validate:"omitnil,max=50"`
	Status           *string                `json:"status" validate:"omitnil,oneof=active inactive maintenance beta"`
	IsActive         *bool                  `json:"is_active"`
	RequiresAuth     *bool                  `json:"requires_auth"`
	APIKeyRequired   *bool                  `json:"api_key_required"`
	UsageLimit       *int                   `json:"usage_limit" validate:"omitnil,min=0"`
	Metadata         map[string]interface{} `json:"metadata"`
	UserID           *uint                  `json:"user_id" validate:"omitnil,min=1"`
}

// RoleAccessRequest 工具的角色授权
type RoleAccessRequest struct {
	RoleID            uint     `json:"role_id" validate:"required"`
	AccessLevel       string   `json:"access_level" validate:"required,oneof=read write admin"`
	CustomPermissions []string `json:"custom_permissions" validate:"omitempty,dive,min=1,max=100"`
}

// SyncRolesRequest 替换工具的角色授权
type SyncRolesRequest struct {
	Roles []RoleAccessRequest `json:"roles" validate:"dive"`
}

// apply 把更新请求中出现的字段写入工具
func (r *UpdateToolRequest) apply(t *model.AITool) {
	setString(&t.Name, r.Name)
	setString(&t.Slug, r.Slug)
	setString(&t.Description, r.Description)
	setString(&t.LongDescription, r.LongDescription)
	setString(&t.Category, r.Category)
	setString(&t.URL, r.URL)
	setString(&t.DocumentationURL, r.DocumentationURL)
	setString(&t.GithubURL, r.GithubURL)
	setString(&t.AuthorName, r.AuthorName)
	setString(&t.AuthorEmail, r.AuthorEmail)
	setString(&t.Team, r.Team)
	setString(&t.UseCase, r.UseCase)
	setString(&t.Pros, r.Pros)
	setString(&t.Cons, r.Cons)
	setString(&t.Icon, r.Icon)
	setString(&t.Color, r.Color)
	setString(&t.Version, r.Version)

	if r.ToolType != nil {
		t.ToolType = model.ToolType(*r.ToolType)
	}
	if r.Status != nil {
		t.Status = model.ToolStatus(*r.Status)
	}
	if r.Tags != nil {
		t.Tags = normalizeTags(r.Tags)
	}
	if r.Rating != nil {
		t.Rating = r.Rating
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	if r.RequiresAuth != nil {
		t.RequiresAuth = *r.RequiresAuth
	}
	if r.APIKeyRequired != nil {
		t.APIKeyRequired = *r.APIKeyRequired
	}
	if r.UsageLimit != nil {
		t.UsageLimit = r.UsageLimit
	}
	if r.Metadata != nil {
		t.Metadata = r.Metadata
	}
	if r.UserID != nil {
		t.UserID = *r.UserID
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// normalizeTags 去掉空白和重复，保持原顺序
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
