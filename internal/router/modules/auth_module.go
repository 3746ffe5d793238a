package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/edu-platform/internal/interface/http"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
)

// AuthModule serves the password reset flow.
type AuthModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.UserHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	resetInitLimiter := middleware.RateLimit(m.Guards.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(m.Guards.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)
}
