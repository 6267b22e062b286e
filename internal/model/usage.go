package model

import (
	"time"

	"gorm.io/datatypes"
)

// UsageLog 用户使用工具的累计记录
type UsageLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"not null;uniqueIndex:idx_usage_user_tool" json:"user_id"`
	AIToolID   uint              `gorm:"column:ai_tool_id;not null;uniqueIndex:idx_usage_user_tool;index" json:"ai_tool_id"`
	UsageCount int               `gorm:"not null" json:"usage_count"`
	LastUsedAt *time.Time        `json:"last_used_at"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	User   *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AITool *AITool `gorm:"foreignKey:AIToolID;constraint:OnDelete:CASCADE" json:"tool,omitempty"`
}

// TableName 指定表名
func (UsageLog) TableName() string {
	return "usage_logs"
}

// Favorite 用户收藏
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_tool" json:"user_id"`
	AIToolID  uint      `gorm:"column:ai_tool_id;not null;uniqueIndex:idx_favorites_user_tool;index" json:"ai_tool_id"`
	CreatedAt time.Time `json:"created_at"`

	User   *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AITool *AITool `gorm:"foreignKey:AIToolID;constraint:OnDelete:CASCADE" json:"tool,omitempty"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
