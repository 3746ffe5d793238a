package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Auth validates the access token (cookie or bearer) and, when a session store
// is configured, that its session id is still the user's live session.
// It sets userID and userRole in the Gin context on success.
func Auth(jwt *helpers.JWTManager, sessions *helpers.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.TokenFromRequest(c, helpers.AccessCookie)
		if token == "" {
			unauthorized(c, "missing access token")
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}
		ok, err := sessions.Valid(c.Request.Context(), claims.UserID, claims.SessionID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "session lookup failed", response.ErrorBody{Code: string(apperror.KindInternal)})
			return
		}
		if !ok {
			unauthorized(c, "session not found")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Error(c, http.StatusUnauthorized, "admin access required", response.ErrorBody{Code: string(apperror.KindForbidden)})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxUserRoleKey) == string(entity.RoleAdmin)
}

func unauthorized(c *gin.Context, msg string) {
	response.Error(c, http.StatusUnauthorized, msg, response.ErrorBody{Code: string(apperror.KindUnauthenticated)})
}
