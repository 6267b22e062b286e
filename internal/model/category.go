package model

import "time"

// Category 工具分类
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_categories_name" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex:idx_categories_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
	Color       string    `gorm:"size:20" json:"color"`
	IsActive    bool      `gorm:"index;not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
