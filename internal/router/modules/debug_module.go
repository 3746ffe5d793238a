package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/edu-platform/internal/interface/middleware"
	"github.com/oksasatya/edu-platform/pkg/metrics"
)

type DebugModule struct {
	Guards Guards
}

func NewDebugModule(g Guards) *DebugModule { return &DebugModule{Guards: g} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Prometheus metrics, rate-limited per IP; private networks are not limited
	rl := middleware.RateLimit(m.Guards.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/metrics", rl, gin.WrapH(metrics.Handler()))
}
