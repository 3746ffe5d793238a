package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/edu-platform/internal/interface/http"
	"github.com/oksasatya/edu-platform/internal/interface/middleware"
)

// writeLimiter bounds authenticated mutations per user. Admins are exempt.
func (g Guards) writeLimiter() gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowAdmin())
}

type CourseModule struct {
	Handler *handlers.CourseHandler
	Guards  Guards
}

func NewCourseModule(h *handlers.CourseHandler, g Guards) *CourseModule {
	return &CourseModule{Handler: h, Guards: g}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	courses.GET("", m.Handler.List)
	courses.GET("/:id", m.Handler.Get)

	auth := courses.Group("", m.Guards.Auth, m.Guards.writeLimiter())
	auth.POST("/:id/enroll", m.Handler.Enroll)
	auth.POST("/:id/rate", m.Handler.Rate)

	admin := courses.Group("", m.Guards.Auth, m.Guards.Admin)
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
	admin.PUT("/:id/thumbnail", m.Handler.UploadThumbnail)
}

// ProjectModule: reads are public, every write needs a user; ownership is checked by the service.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Guards  Guards
}

func NewProjectModule(h *handlers.ProjectHandler, g Guards) *ProjectModule {
	return &ProjectModule{Handler: h, Guards: g}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.GET("", m.Handler.List)
	projects.GET("/:id", m.Handler.Get)

	auth := projects.Group("", m.Guards.Auth, m.Guards.writeLimiter())
	auth.POST("", m.Handler.Create)
	auth.PUT("/:id", m.Handler.Update)
	auth.DELETE("/:id", m.Handler.Delete)
	auth.PUT("/:id/thumbnail", m.Handler.UploadThumbnail)
	auth.POST("/:id/like", m.Handler.Like)
	auth.POST("/:id/comment", m.Handler.Comment)
}

type OpportunityModule struct {
	Handler *handlers.OpportunityHandler
	Guards  Guards
}

func NewOpportunityModule(h *handlers.OpportunityHandler, g Guards) *OpportunityModule {
	return &OpportunityModule{Handler: h, Guards: g}
}

func (m *OpportunityModule) Register(rg *gin.RouterGroup) {
	opps := rg.Group("/opportunities")
	opps.GET("", m.Handler.List)
	opps.GET("/:id", m.Handler.Get)

	auth := opps.Group("", m.Guards.Auth, m.Guards.writeLimiter())
	auth.POST("/:id/apply", m.Handler.Apply)

	admin := opps.Group("", m.Guards.Auth, m.Guards.Admin)
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
	admin.PUT("/:id/applications/:applicationId", m.Handler.SetStatus)
}

// MyModule serves the caller's own enrollments, projects and applications.
type MyModule struct {
	Courses       *handlers.CourseHandler
	Projects      *handlers.ProjectHandler
	Opportunities *handlers.OpportunityHandler
	Guards        Guards
}

func NewMyModule(c *handlers.CourseHandler, p *handlers.ProjectHandler, o *handlers.OpportunityHandler, g Guards) *MyModule {
	return &MyModule{Courses: c, Projects: p, Opportunities: o, Guards: g}
}

func (m *MyModule) Register(rg *gin.RouterGroup) {
	my := rg.Group("/my", m.Guards.Auth)
	my.GET("/courses", m.Courses.Mine)
	my.GET("/projects", m.Projects.Mine)
	my.GET("/applications", m.Opportunities.Mine)
}

type SearchModule struct {
	Handler *handlers.SearchHandler
	Guards  Guards
}

func NewSearchModule(h *handlers.SearchHandler, g Guards) *SearchModule {
	return &SearchModule{Handler: h, Guards: g}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Guards.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/search", rl, m.Handler.Search)
}
