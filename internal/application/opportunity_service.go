package application

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/metrics"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

type OpportunityService struct {
	Base
}

func NewOpportunityService(base Base) *OpportunityService {
	return &OpportunityService{Base: base}
}

type ApplicantView struct {
	entity.Applicant
	User *entity.UserSummary `json:"user"`
}

type OpportunityView struct {
	*entity.Opportunity
	Poster     *entity.UserSummary `json:"poster"`
	Applicants []ApplicantView     `json:"applicants,omitempty"`
}

// ApplicationSummary is one entry of a user's own applications.
type ApplicationSummary struct {
	Opportunity   OpportunityRef           `json:"opportunity"`
	ApplicationID string                   `json:"application_id"`
	Status        entity.ApplicationStatus `json:"status"`
	AppliedAt     time.Time                `json:"applied_at"`
}

type OpportunityRef struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Company string                 `json:"company"`
	Type    entity.OpportunityType `json:"type"`
}

type SalaryInput struct {
	Min      *float64 `json:"min" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3"`
}

type CreateOpportunityInput struct {
	Title               string                 `json:"title" validate:"required"`
	Company             string                 `json:"company" validate:"required"`
	Description         string                 `json:"description" validate:"required"`
	Type                entity.OpportunityType `json:"type" validate:"required,opportunity_type"`
	Location            string                 `json:"location" validate:"required"`
	IsRemote            bool                   `json:"is_remote"`
	Requirements        []string               `json:"requirements"`
	Responsibilities    []string               `json:"responsibilities"`
	Skills              []string               `json:"skills"`
	Salary              SalaryInput            `json:"salary"`
	ApplicationDeadline *time.Time             `json:"application_deadline" validate:"required"`
	IsActive            *bool                  `json:"is_active"`
}

type UpdateOpportunityInput struct {
	Title               *string                 `json:"title" validate:"omitempty,min=1"`
	Company             *string                 `json:"company" validate:"omitempty,min=1"`
	Description         *string                 `json:"description" validate:"omitempty,min=1"`
	Type                *entity.OpportunityType `json:"type" validate:"omitempty,opportunity_type"`
	Location            *string                 `json:"location" validate:"omitempty,min=1"`
	IsRemote            *bool                   `json:"is_remote"`
	Requirements        []string                `json:"requirements"`
	Responsibilities    []string                `json:"responsibilities"`
	Skills              []string                `json:"skills"`
	Salary              *SalaryInput            `json:"salary"`
	ApplicationDeadline *time.Time              `json:"application_deadline"`
	IsActive            *bool                   `json:"is_active"`
}

type ApplicationStatusInput struct {
	Status entity.ApplicationStatus `json:"status" validate:"required,application_status"`
}

func (in SalaryInput) salary() entity.Salary {
	s := entity.Salary{Min: in.Min, Max: in.Max, Currency: in.Currency}
	if s.Currency == "" {
		s.Currency = entity.DefaultCurrency
	}
	return s
}

func applicantIDs(applicants []entity.Applicant) []string {
	ids := make([]string, 0, len(applicants))
	for _, a := range applicants {
		ids = append(ids, a.UserID)
	}
	return ids
}

func (s *OpportunityService) detail(ctx context.Context, o *entity.Opportunity) (*OpportunityView, error) {
	users, err := s.summaries(ctx, []string{o.PostedBy}, applicantIDs(o.Applicants))
	if err != nil {
		return nil, err
	}
	v := &OpportunityView{Opportunity: o, Poster: summaryPtr(users, o.PostedBy)}
	v.Applicants = make([]ApplicantView, 0, len(o.Applicants))
	for _, a := range o.Applicants {
		v.Applicants = append(v.Applicants, ApplicantView{Applicant: a, User: summaryPtr(users, a.UserID)})
	}
	return v, nil
}

// List returns active opportunities only, newest first.
func (s *OpportunityService) List(ctx context.Context, f repository.OpportunityFilter) ([]OpportunityView, error) {
	f.ActiveOnly = true
	f.Applicant = ""
	found, err := s.Store.Opportunities.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	ids := make([]string, 0, len(found))
	for _, o := range found {
		ids = append(ids, o.PostedBy)
	}
	users, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]OpportunityView, 0, len(found))
	for _, o := range found {
		out = append(out, OpportunityView{Opportunity: o, Poster: summaryPtr(users, o.PostedBy)})
	}
	return out, nil
}

func (s *OpportunityService) Get(ctx context.Context, id string) (*OpportunityView, error) {
	o, err := s.Store.Opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "opportunity")
	}
	return s.detail(ctx, o)
}

// Create accepts deadlines in the past.
func (s *OpportunityService) Create(ctx context.Context, in CreateOpportunityInput, posterID string) (*OpportunityView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	o := &entity.Opportunity{
		ID:                  s.newID(),
		Title:               in.Title,
		Company:             in.Company,
		Description:         in.Description,
		Type:                in.Type,
		Location:            in.Location,
		IsRemote:            in.IsRemote,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		Skills:              in.Skills,
		Salary:              in.Salary.salary(),
		ApplicationDeadline: in.ApplicationDeadline.UTC(),
		PostedBy:            posterID,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if err := s.Store.Opportunities.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	s.Search.indexOpportunity(ctx, o)
	return s.detail(ctx, o)
}

func (s *OpportunityService) Update(ctx context.Context, id string, in UpdateOpportunityInput) (*OpportunityView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	o, err := s.Store.Opportunities.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "opportunity")
	}
	if in.Title != nil {
		o.Title = *in.Title
	}
	if in.Company != nil {
		o.Company = *in.Company
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Type != nil {
		o.Type = *in.Type
	}
	if in.Location != nil {
		o.Location = *in.Location
	}
	if in.IsRemote != nil {
		o.IsRemote = *in.IsRemote
	}
	if in.Requirements != nil {
		o.Requirements = in.Requirements
	}
	if in.Responsibilities != nil {
		o.Responsibilities = in.Responsibilities
	}
	if in.Skills != nil {
		o.Skills = in.Skills
	}
	if in.Salary != nil {
		o.Salary = in.Salary.salary()
	}
	if in.ApplicationDeadline != nil {
		o.ApplicationDeadline = in.ApplicationDeadline.UTC()
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	o.UpdatedAt = s.now()
	if err := s.Store.Opportunities.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("update opportunity: %w", err)
	}
	s.Search.indexOpportunity(ctx, o)
	return s.detail(ctx, o)
}

func (s *OpportunityService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Opportunities.Delete(ctx, id); err != nil {
		return notFound(err, "opportunity")
	}
	s.Search.remove(ctx, KindOpportunity, id)
	return nil
}

// Apply appends a pending application. The deadline and is_active are not checked.
func (s *OpportunityService) Apply(ctx context.Context, id, userID string) (*entity.Applicant, error) {
	var (
		opp     *entity.Opportunity
		applied entity.Applicant
	)
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.Store.Opportunities.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "opportunity")
		}
		now := s.now()
		if !o.AddApplicant(s.newID(), userID, now) {
			return apperror.Conflict("already applied for this opportunity")
		}
		o.UpdatedAt = now
		if err := s.Store.Opportunities.Save(ctx, o); err != nil {
			return fmt.Errorf("save opportunity: %w", err)
		}
		opp, applied = o, *o.ApplicationOf(userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventApplication)
	if u, err := s.Store.Users.GetByID(ctx, userID); err == nil {
		s.Notify.ApplicationReceived(ctx, u, opp, &applied)
	}
	return &applied, nil
}

// SetApplicationStatus overwrites an applicant's status. Any transition among the four values is allowed.
func (s *OpportunityService) SetApplicationStatus(ctx context.Context, id, applicationID string, in ApplicationStatusInput) (*entity.Applicant, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var (
		opp     *entity.Opportunity
		updated entity.Applicant
	)
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.Store.Opportunities.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "opportunity")
		}
		a := o.Application(applicationID)
		if a == nil {
			return apperror.NotFound("application not found")
		}
		a.Status = in.Status
		o.UpdatedAt = s.now()
		if err := s.Store.Opportunities.Save(ctx, o); err != nil {
			return fmt.Errorf("save opportunity: %w", err)
		}
		opp, updated = o, *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventStatus)
	if u, err := s.Store.Users.GetByID(ctx, updated.UserID); err == nil {
		s.Notify.ApplicationStatus(ctx, u, opp, &updated)
	}
	return &updated, nil
}

// MyApplications lists the user's applications, newest opportunity first.
func (s *OpportunityService) MyApplications(ctx context.Context, userID string) ([]ApplicationSummary, error) {
	found, err := s.Store.Opportunities.Find(ctx, repository.OpportunityFilter{Applicant: userID})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	out := make([]ApplicationSummary, 0, len(found))
	for _, o := range found {
		a := o.ApplicationOf(userID)
		if a == nil {
			continue
		}
		out = append(out, ApplicationSummary{
			Opportunity:   OpportunityRef{ID: o.ID, Title: o.Title, Company: o.Company, Type: o.Type},
			ApplicationID: a.ID,
			Status:        a.Status,
			AppliedAt:     a.AppliedAt,
		})
	}
	return out, nil
}
