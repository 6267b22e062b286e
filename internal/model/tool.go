package model

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ToolStatus 工具状态
type ToolStatus string

const (
	ToolStatusActive      ToolStatus = "active"
	ToolStatusInactive    ToolStatus = "inactive"
	ToolStatusMaintenance ToolStatus = "maintenance"
	ToolStatusBeta        ToolStatus = "beta"
)

// ToolType 工具类型
type ToolType string

const (
	ToolTypeLibrary     ToolType = "library"
	ToolTypeApplication ToolType = "application"
	ToolTypeFramework   ToolType = "framework"
	ToolTypeAPI         ToolType = "api"
	ToolTypeService     ToolType = "service"
)

// SlugPattern slug 只允许小写字母、数字和连字符
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 由名称生成 slug
func Slugify(name string) string {
	s := slugUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-")
}

// AITool AI 工具目录条目
type AITool struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Name             string                      `gorm:"size:255;not null;uniqueIndex:idx_ai_tools_name" json:"name"`
	Slug             string                      `gorm:"size:255;not null;uniqueIndex:idx_ai_tools_slug" json:"slug"`
	Description      string                      `gorm:"type:text" json:"description"`
	LongDescription  string                      `gorm:"type:text" json:"long_description"`
	URL              string                      `gorm:"size:500" json:"url"`
	DocumentationURL string                      `gorm:"size:500" json:"documentation_url"`
	GithubURL        string                      `gorm:"size:500" json:"github_url"`
	Icon             string                      `gorm:"size:255" json:"icon"`
	Color            string                      `gorm:"size:20" json:"color"`
	Version          string                      `gorm:"size:50" json:"version"`
	Status           ToolStatus                  `gorm:"size:20;not null" json:"status"`
	ToolType         ToolType                    `gorm:"size:20;index" json:"tool_type"`
	Category         string                      `gorm:"size:100;index" json:"category"`
	Team             string                      `gorm:"size:100;index" json:"team"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	AuthorName       string                      `gorm:"size:255" json:"author_name"`
	AuthorEmail      string                      `gorm:"size:255" json:"author_email"`
	UseCase          string                      `gorm:"type:text" json:"use_case"`
	Pros             string                      `gorm:"type:text" json:"pros"`
	Cons             string                      `gorm:"type:text" json:"cons"`
	Rating           *int                        `json:"rating"`
	IsActive         bool                        `gorm:"index;not null" json:"is_active"`
	RequiresAuth     bool                        `gorm:"not null" json:"requires_auth"`
	APIKeyRequired   bool                        `gorm:"not null" json:"api_key_required"`
	UsageLimit       *int                        `json:"usage_limit"`
	Metadata         datatypes.JSONMap           `json:"metadata"`
	UserID           uint                        `gorm:"index;not null" json:"user_id"`
	CreatedAt        time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`

	// 关联
	User       *User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Creator    *UserInfo    `gorm:"-" json:"user,omitempty"`
	Categories []*Category  `gorm:"-" json:"categories,omitempty"`
	TagItems   []*Tag       `gorm:"-" json:"tag_items,omitempty"`
	Roles      []RoleAccess `gorm:"-" json:"roles,omitempty"`

	// 详情统计
	UsageCount     *int64 `gorm:"-" json:"usage_count,omitempty"`
	FavoritesCount *int64 `gorm:"-" json:"favorites_count,omitempty"`
}

// TableName 指定表名
func (AITool) TableName() string {
	return "ai_tools"
}

// AttachCreator 根据预加载的 User 填充对外的创建者信息
func (t *AITool) AttachCreator() {
	if t.User != nil {
		t.Creator = t.User.ToUserInfo()
	}
}

// TagList 返回标签副本
func (t *AITool) TagList() []string {
	out := make([]string, len(t.Tags))
	copy(out, t.Tags)
	return out
}

// AIToolCategory 工具-分类关联表
type AIToolCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AIToolID   uint      `gorm:"column:ai_tool_id;not null;uniqueIndex:idx_ai_tool_category" json:"ai_tool_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_ai_tool_category;index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`

	AITool   *AITool   `gorm:"foreignKey:AIToolID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (AIToolCategory) TableName() string {
	return "ai_tool_category"
}

// AIToolTag 工具-标签关联表
type AIToolTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AIToolID  uint      `gorm:"column:ai_tool_id;not null;uniqueIndex:idx_ai_tool_tag" json:"ai_tool_id"`
	TagID     uint      `gorm:"not null;uniqueIndex:idx_ai_tool_tag;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	AITool *AITool `gorm:"foreignKey:AIToolID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    *Tag    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (AIToolTag) TableName() string {
	return "ai_tool_tag"
}
