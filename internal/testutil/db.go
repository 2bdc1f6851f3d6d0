// Package testutil 提供测试用的内存数据库
package testutil

import (
	"course_quest_backend/internal/config"
	"course_quest_backend/pkg/database"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 返回已迁移并写入默认成就的 sqlite 内存库
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   "file::memory:",
	}, gormlogger.Silent)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// 内存库每个连接各自独立，固定为单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
