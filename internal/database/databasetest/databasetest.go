// Package databasetest 提供测试用的内存 sqlite 数据库
package databasetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New 创建已迁移的内存数据库，测试结束自动关闭
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn), config.LogConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// 内存库每个连接各自独立，固定为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
