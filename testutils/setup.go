package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// SetupDB initializes a unique in-memory SQLite database for testing
// and performs auto-migration. Foreign keys are enforced like in Postgres.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:citf_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}
