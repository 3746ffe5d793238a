package templates

import (
	"time"

	"github.com/oksasatya/edu-platform/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		utc := time.Now().Add(dur).UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// NewBaseEmailData fills the branding fields from cfg, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email))
}

func NewCourseEnrollmentData(cfg *config.Config, name, email, courseID, courseTitle string) map[string]any {
	d := NewBaseEmailData(cfg, CourseEnrollment, name, email, WithActionURL(cfg.CourseURL+"/"+courseID))
	d.CourseTitle = courseTitle
	return ToMap(d)
}

func NewApplicationReceivedData(cfg *config.Config, name, email, opportunityID, title, company string, at time.Time) map[string]any {
	d := NewBaseEmailData(cfg, ApplicationReceived, name, email,
		WithActionURL(cfg.OpportunityURL+"/"+opportunityID), WithTime(at))
	d.OpportunityTitle = title
	d.Company = company
	return ToMap(d)
}

func NewApplicationStatusData(cfg *config.Config, name, email, opportunityID, title, company, status string) map[string]any {
	d := NewBaseEmailData(cfg, ApplicationStatus, name, email, WithActionURL(cfg.OpportunityURL+"/"+opportunityID))
	d.OpportunityTitle = title
	d.Company = company
	d.Status = status
	return ToMap(d)
}

func NewPasswordResetData(cfg *config.Config, name, email, token string, ttl time.Duration) map[string]any {
	d := NewBaseEmailData(cfg, PasswordReset, name, email,
		WithActionURL(cfg.ResetPasswordURL+"?token="+token), WithExpiresIn(ttl))
	return ToMap(d)
}
