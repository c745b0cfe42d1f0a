package database

import (
	"path/filepath"
	"testing"

	"go-leave/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTestSQLite opens a migrated sqlite database in a temp dir. The handle is
// closed when the test finishes.
func OpenTestSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "leave_test.db"),
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: NowUTC,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := RunMigrations(sqlDB, config.DriverSQLite, zap.NewNop()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
