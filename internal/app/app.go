package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"go-leave/internal/config"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/database"
	applog "go-leave/internal/shared/logger"
	"go-leave/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the long lived connections shared by every entrypoint.
type Infra struct {
	Config *config.Config
	GormDB *gorm.DB
	SQLDB  *sql.DB
	// Redis is nil when redis.addr is empty.
	Redis  *redis.Client
	Logger *zap.Logger
}

// Connect opens the database, applies migrations and, when configured,
// connects redis.
func Connect(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, applog.GormLevel(cfg.Log.Level), logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	infra := &Infra{
		Config: cfg,
		GormDB: gormDB,
		SQLDB:  sqlDB,
		Logger: logger,
	}

	if cfg.Redis.Enabled() {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		logger.Info("redis disabled, stats cache and idempotency keys are off")
	}

	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// NewRouter returns a gin engine with the global middleware chain.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.ContextLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.FullPath()))
		httpErr := apperror.ToHTTP(apperror.ErrInternal)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		c.Abort()
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORS.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, middleware.IdempotencyHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	}))

	return r
}

// BuildApp wires every module onto router.
func BuildApp(router *gin.Engine, infra *Infra) error {
	router.GET("/healthz", func(c *gin.Context) {
		if err := infra.SQLDB.PingContext(c.Request.Context()); err != nil {
			infra.Logger.Warn("health check failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unavailable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	return registerModules(router, infra)
}
