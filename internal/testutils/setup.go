package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// SetupDB 为当前测试创建独立的内存 SQLite 库，替换全局 db.DB 并迁移全部表，
// 测试结束时恢复原值。不清理 service 层缓存（会引入循环依赖），
// 需要时由调用方自行执行 service.ClearCache()。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试独立命名，避免共享缓存串库
	dsn := fmt.Sprintf("file:cdt_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// 单连接，保证内存库在测试期间不被回收
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := db.DB
	t.Cleanup(func() {
		if prevDB != nil && db.DB == gdb {
			db.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Setting{},
		&model.Folder{},
		&model.File{},
		&model.SharedAccess{},
		&model.SharedGrant{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	db.DB = gdb
	return gdb
}
