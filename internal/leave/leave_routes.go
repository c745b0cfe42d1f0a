package leave

import (
	"time"

	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// RegisterRoutes mounts /leaves and the /employees/:id/leaves listing.
// rdb may be nil, which turns off idempotent replay of POST /leaves.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	authMW gin.HandlerFunc,
	rdb *redis.Client,
) {
	readLeaves := middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead)
	writeLeaves := middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionWrite)

	leaves := r.Group("/leaves")
	leaves.Use(authMW)
	{
		leaves.GET("", middleware.RateLimitByUser(5, 20), readLeaves, handler.GetAll)
		leaves.GET("/export.xlsx", middleware.RateLimitByUser(1, 3), readLeaves, handler.ExportXLSX)
		leaves.GET("/calendar.ics", middleware.RateLimitByUser(1, 3), readLeaves, handler.ExportCalendar)
		leaves.GET("/reasons", middleware.RateLimitByUser(5, 20), readLeaves, handler.Reasons)
		leaves.GET("/:id", middleware.RateLimitByUser(5, 20), readLeaves, handler.GetByID)

		leaves.POST("",
			middleware.RateLimitByUser(2, 5),
			writeLeaves,
			middleware.Idempotency(rdb, idempotencyTTL),
			handler.Create,
		)

		leaves.DELETE("/:id", middleware.RateLimitByUser(1, 3), writeLeaves, handler.Delete)
	}

	employees := r.Group("/employees")
	employees.Use(authMW)
	employees.GET("/:id/leaves", middleware.RateLimitByUser(5, 20), readLeaves, handler.GetByEmployee)
}
