package importer

import (
	"time"

	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// RegisterRoutes mounts /import. rdb may be nil.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	authMW gin.HandlerFunc,
	rdb *redis.Client,
) {
	imports := r.Group("/import")
	imports.Use(authMW)
	{
		imports.GET("/template",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceImport, rbac.ActionRead),
			handler.Template,
		)

		imports.POST("/employees",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceImport, rbac.ActionWrite),
			middleware.Idempotency(rdb, idempotencyTTL),
			handler.Import,
		)
	}
}
