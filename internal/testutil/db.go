// Package testutil 提供测试辅助工具
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ashwinyue/ai-tools-hub/internal/database"
)

// NewTestDB 创建独立的内存 sqlite 数据库并完成迁移
// 每个测试使用唯一的库名，连接数限制为 1 以保证共享同一内存库
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate())
	return db.DB
}
