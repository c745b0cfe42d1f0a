package connection_test

import (
	"path/filepath"
	"testing"

	"go-leave/internal/config"
	"go-leave/internal/shared/connection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverMySQL, config.DriverSQLite} {
		d, err := connection.Dialector(config.DatabaseConfig{Driver: driver, Path: "x.db"})
		assert.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := connection.Dialector(config.DatabaseConfig{Driver: "mssql"})
	assert.Error(t, err)
}

func TestConnectGORMSQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "conn.db"),
		MaxRetries:   1,
		MaxOpenConns: 4,
	}

	db, err := connection.ConnectGORMWithRetry(cfg, gormlogger.Silent, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)
}
