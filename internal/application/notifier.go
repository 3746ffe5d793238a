package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/pkg/mailer"
	mailtpl "github.com/oksasatya/edu-platform/pkg/mailer/templates"
)

// Notifier queues transactional emails. Publishing is best effort.
type Notifier struct {
	Publisher Publisher
	Config    *config.Config
	Logger    *logrus.Logger
}

func NewNotifier(pub Publisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Publisher: pub, Config: cfg, Logger: logger}
}

func (n *Notifier) send(ctx context.Context, to, template string, data map[string]any) {
	if n == nil || n.Publisher == nil || to == "" {
		return
	}
	if n.Config != nil && !n.Config.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := n.Publisher.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{"template": template, "to": to}).Warn("queue email failed")
	}
}

func (n *Notifier) cfg() *config.Config {
	if n.Config == nil {
		return &config.Config{}
	}
	return n.Config
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if n == nil {
		return
	}
	n.send(ctx, u.Email, mailtpl.Welcome, mailtpl.NewWelcomeData(n.cfg(), u.Name, u.Email))
}

func (n *Notifier) CourseEnrollment(ctx context.Context, u *entity.User, c *entity.Course) {
	if n == nil {
		return
	}
	n.send(ctx, u.Email, mailtpl.CourseEnrollment,
		mailtpl.NewCourseEnrollmentData(n.cfg(), u.Name, u.Email, c.ID, c.Title))
}

func (n *Notifier) ApplicationReceived(ctx context.Context, u *entity.User, o *entity.Opportunity, a *entity.Applicant) {
	if n == nil {
		return
	}
	n.send(ctx, u.Email, mailtpl.ApplicationReceived,
		mailtpl.NewApplicationReceivedData(n.cfg(), u.Name, u.Email, o.ID, o.Title, o.Company, a.AppliedAt))
}

func (n *Notifier) ApplicationStatus(ctx context.Context, u *entity.User, o *entity.Opportunity, a *entity.Applicant) {
	if n == nil {
		return
	}
	n.send(ctx, u.Email, mailtpl.ApplicationStatus,
		mailtpl.NewApplicationStatusData(n.cfg(), u.Name, u.Email, o.ID, o.Title, o.Company, string(a.Status)))
}

func (n *Notifier) PasswordReset(ctx context.Context, u *entity.User, token string, ttl time.Duration) {
	if n == nil {
		return
	}
	n.send(ctx, u.Email, mailtpl.PasswordReset,
		mailtpl.NewPasswordResetData(n.cfg(), u.Name, u.Email, token, ttl))
}
