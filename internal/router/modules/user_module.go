package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/edu-platform/internal/interface/http"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
)

// UserModule wires account routes under /users.
// Public: register, login, refresh. Protected: logout, profile. Admin: list, delete.
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewUserModule(h *handlers.UserHandler, g Guards) *UserModule {
	return &UserModule{Handler: h, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := m.Guards.Redis
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.POST("", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := users.Group("")
	auth.Use(m.Guards.Auth, middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile/photo", m.Handler.UploadPhoto)
	}

	admin := users.Group("")
	admin.Use(m.Guards.Auth, m.Guards.Admin)
	{
		admin.GET("", m.Handler.List)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
