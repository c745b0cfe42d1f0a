package logger_test

import (
	"testing"

	"go-leave/internal/config"
	"go-leave/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = logger.New(config.LogConfig{Level: "warn", Format: "json"})
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = logger.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, logger.GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, logger.GormLevel("info"))
	assert.Equal(t, gormlogger.Error, logger.GormLevel("error"))
}
