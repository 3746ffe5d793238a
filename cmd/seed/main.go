package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/internal/container"
	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/internal/infrastructure/store"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

type seedOptions struct {
	adminName     string
	adminEmail    string
	adminPassword string
	sample        bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed an admin account and optional sample content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.MailSendEnabled = false
			logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
			validation.Init()
			return run(cmd.Context(), cfg, logger, opts)
		},
	}
	cmd.Flags().StringVar(&opts.adminName, "name", "Platform Admin", "admin display name")
	cmd.Flags().StringVar(&opts.adminEmail, "email", "admin@example.com", "admin email")
	cmd.Flags().StringVar(&opts.adminPassword, "password", "password123", "admin password")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "also create a sample course, project and opportunity")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts seedOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	deps := container.Deps{Config: cfg, Logger: logger, Store: st}
	if cfg.SearchEnabled {
		if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err == nil {
			deps.Index = &helpers.ContentIndex{Client: es, Index: cfg.ESContentIndex}
		} else {
			helpers.LogWarn(logger, "search index unavailable", err, nil)
		}
	}
	c := container.New(deps)

	admin, err := ensureAdmin(ctx, c, st, opts)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"id": admin.ID, "email": admin.Email}).Info("admin ready")

	if !opts.sample {
		return nil
	}
	return seedSample(ctx, c, logger, admin.ID)
}

// ensureAdmin registers the account if missing and promotes it to admin.
func ensureAdmin(ctx context.Context, c *container.Container, st *repository.Store, opts seedOptions) (*entity.User, error) {
	u, err := st.Users.GetByEmail(ctx, opts.adminEmail)
	if errors.Is(err, repository.ErrNotFound) {
		u, _, err = c.Users.Register(ctx, application.RegisterInput{
			Name:     opts.adminName,
			Email:    opts.adminEmail,
			Password: opts.adminPassword,
		})
		if ae, ok := apperror.As(err); ok && ae.Kind == apperror.KindValidation {
			return nil, fmt.Errorf("invalid admin account: %v", ae.Details)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if u.IsAdmin() {
		return u, nil
	}
	u.Role = entity.RoleAdmin
	if err := st.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("promote admin: %w", err)
	}
	return u, nil
}

func seedSample(ctx context.Context, c *container.Container, logger *logrus.Logger, adminID string) error {
	price := 0.0
	course, err := c.Courses.Create(ctx, application.CreateCourseInput{
		Title:       "Go for Backend Engineers",
		Description: "HTTP services, persistence and testing in Go.",
		Difficulty:  entity.CourseBeginner,
		Duration:    12,
		Topics:      []string{"go", "http", "testing"},
		Content: []entity.CourseModule{
			{Title: "Getting started", Description: "Toolchain and modules"},
			{Title: "Building an API", Description: "Routing, validation and errors"},
		},
		Price:       &price,
		IsPublished: true,
	}, adminID)
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	project, err := c.Projects.Create(ctx, application.CreateProjectInput{
		Title:        "Study Group Scheduler",
		Description:  "Match learners into weekly study sessions.",
		Difficulty:   entity.ProjectIntermediate,
		Technologies: []string{"go", "postgres"},
	}, adminID)
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	deadline := time.Now().AddDate(0, 1, 0)
	opp, err := c.Opportunities.Create(ctx, application.CreateOpportunityInput{
		Title:               "Junior Backend Intern",
		Company:             "Acme Learning",
		Description:         "Help build the course catalogue service.",
		Type:                entity.OpportunityInternship,
		Location:            "Jakarta",
		IsRemote:            true,
		Skills:              []string{"go", "sql"},
		ApplicationDeadline: &deadline,
	}, adminID)
	if err != nil {
		return fmt.Errorf("seed opportunity: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"course":      course.ID,
		"project":     project.ID,
		"opportunity": opp.ID,
	}).Info("sample content created")
	return nil
}
