package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/helpers"
)

// Deps are the constructed infrastructure clients. Publisher, Index and Storage
// are optional; leave them nil when the backing service is not configured.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Store     *repository.Store
	Redis     *redis.Client
	Publisher application.Publisher
	Index     application.SearchIndex
	Storage   application.ObjectStorage
}

// Container holds the shared components the router wires into modules.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Store    *repository.Store
	Redis    *redis.Client
	JWT      *helpers.JWTManager
	Sessions *helpers.SessionStore
	Cookies  *helpers.Manager

	Users         *application.UserService
	Courses       *application.CourseService
	Projects      *application.ProjectService
	Opportunities *application.OpportunityService
	Search        *application.SearchService
}

func New(d Deps) *Container {
	cfg := d.Config
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	var sessions *helpers.SessionStore
	var resets application.ResetTokens
	if d.Redis != nil {
		sessions = helpers.NewSessionStore(d.Redis, cfg.RefreshTTL)
		resets = helpers.NewResetTokenStore(d.Redis)
	}

	base := application.NewBase(d.Store, d.Logger)
	base.Search = application.NewSearchService(d.Index, base.Logger)
	base.Notify = application.NewNotifier(d.Publisher, cfg, base.Logger)
	base.Storage = d.Storage

	return &Container{
		Config:        cfg,
		Logger:        base.Logger,
		Store:         d.Store,
		Redis:         d.Redis,
		JWT:           jwt,
		Sessions:      sessions,
		Cookies:       helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Users:         application.NewUserService(base, jwt, sessions, resets, cfg.PasswordResetTTL),
		Courses:       application.NewCourseService(base),
		Projects:      application.NewProjectService(base),
		Opportunities: application.NewOpportunityService(base),
		Search:        base.Search,
	}
}
