package middleware

import (
	"errors"
	"strings"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"
	"go-leave/internal/shared/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookie carries the access token for browser clients.
const SessionCookie = "access_token"

func tokenFromRequest(c *gin.Context) string {
	if tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && tokenString != "" {
		return tokenString
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message)
}

// setIdentity copies the token claims into the gin context and the request
// context so services and the request logger see the caller.
func setIdentity(c *gin.Context, claims *token.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)

	ctx := contextutil.WithUser(c.Request.Context(), claims.UserID, claims.Role)
	reqLogger := contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID))
	ctx = contextutil.WithLogger(ctx, reqLogger)
	c.Request = c.Request.WithContext(ctx)
}

func AuthMiddleware(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := tm.Parse(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the caller identity when a valid token is present and
// never rejects the request.
func OptionalAuth(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := tm.Parse(tokenString); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}
