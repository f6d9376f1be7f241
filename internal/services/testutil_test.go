package services

import (
	"fmt"
	"strings"
	"testing"

	"greensnap/internal/db"
	"greensnap/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 给每个测试挂一个独立的内存库
// 生产走 Postgres，这里用纯 Go 的 sqlite 驱动跑同一套 gorm 语句
func setupTestDB(t *testing.T) {
	t.Helper()

	// 每个测试独立命名，避免共享内存库互相污染
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// 内存 sqlite 并发写会报锁冲突，收紧到单连接在池里串行化
	// 与 Postgres 的行级锁语义等价，并发正确性断言仍然成立
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.Submission{},
		&models.NullifierRecord{},
		&models.StrikeRecord{},
		&models.StrikeLog{},
		&models.RewardAccount{},
		&models.RewardLog{},
		&models.ReviewAlert{},
		&models.AdminGrant{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb
}
