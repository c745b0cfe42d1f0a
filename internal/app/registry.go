package app

import (
	"context"
	"time"

	"go-leave/internal/auth"
	"go-leave/internal/dashboard"
	"go-leave/internal/employee"
	"go-leave/internal/importer"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	rbacinfra "go-leave/internal/rbac/infra"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// Services is the wired service layer, shared by the HTTP router and leavectl.
type Services struct {
	Auth      auth.Service
	Employee  employee.Service
	Leave     leave.Service
	Dashboard dashboard.Service
	Importer  importer.Service
	RBAC      rbac.Service
	Tokens    *token.Manager
}

func NewServices(infra *Infra) (*Services, error) {
	cfg := infra.Config
	db := infra.SQLDB
	gormDB := infra.GormDB
	rdb := infra.Redis
	logger := infra.Logger

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)

	var outboxRepo kafka.OutboxRepository
	if cfg.Kafka.Enabled() {
		outboxRepo = kafka.NewOutboxRepository(gormDB)
	}

	// --- RBAC Core ---
	enforcer, err := rbacinfra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	return &Services{
		Auth:      auth.NewService(authRepo, tokens, logger),
		Employee:  employeeService,
		Leave:     leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, rdb, logger),
		Dashboard: dashboard.NewService(dashboardRepo, rdb, cfg.Redis.StatsTTL, logger),
		Importer: importer.NewService(employeeService, importer.Options{
			BatchSize: cfg.Import.BatchSize,
			MaxRows:   cfg.Import.MaxRows,
		}, logger),
		RBAC:   rbacService,
		Tokens: tokens,
	}, nil
}

func registerModules(router *gin.Engine, infra *Infra) error {
	cfg := infra.Config
	logger := infra.Logger

	svc, err := NewServices(infra)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Auth.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(svc.Auth, auth.CookieOptions{
		Secure: cfg.Auth.CookieSecure,
		TTL:    cfg.Auth.SessionTTL,
	}, logger)
	employeeHandler := employee.NewHandler(svc.Employee, logger)
	leaveHandler := leave.NewHandler(svc.Leave, logger)
	dashboardHandler := dashboard.NewHandler(svc.Dashboard, logger)
	importerHandler := importer.NewHandler(svc.Importer, cfg.Import.MaxFileSize, logger)
	rbacHandler := rbac.NewHandler(svc.RBAC, logger)

	// --- Routes Registration ---
	authMW := middleware.AuthMiddleware(svc.Tokens)
	adminOnly := middleware.RBACAuthorize(svc.RBAC, rbac.ResourceUser, rbac.ActionWrite)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, svc.Tokens, adminOnly)
		employee.RegisterRoutes(api, employeeHandler, svc.RBAC, authMW)
		leave.RegisterRoutes(api, leaveHandler, svc.RBAC, authMW, infra.Redis)
		dashboard.RegisterRoutes(api, dashboardHandler, svc.RBAC, authMW)
		importer.RegisterRoutes(api, importerHandler, svc.RBAC, authMW, infra.Redis)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
