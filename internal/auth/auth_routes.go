package auth

import (
	"go-leave/internal/middleware"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. adminOnly guards account creation.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tm *token.Manager, adminOnly gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.GET("/status", middleware.OptionalAuth(tm), handler.Status)
		auth.POST("/logout", handler.Logout)
		auth.POST("/users", middleware.AuthMiddleware(tm), adminOnly, handler.CreateUser)
	}
}
