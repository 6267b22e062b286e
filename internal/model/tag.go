package model

import "time"

const (
	// DefaultTagColor 标签默认颜色
	DefaultTagColor = "#6B7280"
	// DefaultTagIcon 标签默认图标
	DefaultTagIcon = "tag"
)

// Tag 工具标签
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex:idx_tags_name" json:"name"`
	Slug        string    `gorm:"size:50;not null;uniqueIndex:idx_tags_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:20;not null" json:"color"`
	Icon        string    `gorm:"size:255;not null" json:"icon"`
	IsActive    bool      `gorm:"index;not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// ApplyDefaults 填充默认颜色和图标
func (t *Tag) ApplyDefaults() {
	if t.Color == "" {
		t.Color = DefaultTagColor
	}
	if t.Icon == "" {
		t.Icon = DefaultTagIcon
	}
}
