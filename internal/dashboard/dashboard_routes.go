package dashboard

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, authMW gin.HandlerFunc) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(authMW)
	{
		dashboard.GET("/stats",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead),
			handler.Stats,
		)
	}
}
