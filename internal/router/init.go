package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/edu-platform/internal/container"
	handlers "github.com/oksasatya/edu-platform/internal/interface/http"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
	"github.com/oksasatya/edu-platform/internal/router/modules"
	"github.com/oksasatya/edu-platform/pkg/response"
)

// InitModules builds every feature module from c and registers it on r.
// It should be called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	guards := modules.Guards{
		Auth:  middleware.Auth(c.JWT, c.Sessions),
		Admin: middleware.AdminOnly(),
		Redis: c.Redis,
	}

	users := handlers.NewUserHandler(c.Users, c.Logger, c.Cookies, cfg.MaxUploadBytes)
	courses := handlers.NewCourseHandler(c.Courses, c.Logger, cfg.MaxUploadBytes)
	projects := handlers.NewProjectHandler(c.Projects, c.Logger, cfg.MaxUploadBytes)
	opps := handlers.NewOpportunityHandler(c.Opportunities, c.Logger)

	r.Add(ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/health", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"store": cfg.StoreDriver}, "ok", nil)
		})
	}))
	r.Add(modules.NewAuthModule(users, guards))
	r.Add(modules.NewUserModule(users, guards))
	r.Add(modules.NewCourseModule(courses, guards))
	r.Add(modules.NewProjectModule(projects, guards))
	r.Add(modules.NewOpportunityModule(opps, guards))
	r.Add(modules.NewMyModule(courses, projects, opps, guards))
	r.Add(modules.NewSearchModule(handlers.NewSearchHandler(c.Search, c.Logger), guards))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(guards))
	}
}
