package entity

import "time"

type OpportunityType string

const (
	OpportunityJob        OpportunityType = "job"
	OpportunityInternship OpportunityType = "internship"
	OpportunityProject    OpportunityType = "project"
)

func (t OpportunityType) Valid() bool {
	switch t {
	case OpportunityJob, OpportunityInternship, OpportunityProject:
		return true
	}
	return false
}

// ApplicationStatus has no terminal state: every transition among the four values is allowed.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

const DefaultCurrency = "USD"

type Salary struct {
	Min      *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" bson:"max,omitempty"`
	Currency string   `json:"currency" bson:"currency"`
}

// Applicant is one application entry; ID is a generated sub-identifier stable across appends.
type Applicant struct {
	ID        string            `json:"id" bson:"id"`
	UserID    string            `json:"user_id" bson:"user_id"`
	Status    ApplicationStatus `json:"status" bson:"status"`
	AppliedAt time.Time         `json:"applied_at" bson:"applied_at"`
}

type Opportunity struct {
	ID                  string          `json:"id" bson:"_id"`
	Title               string          `json:"title" bson:"title"`
	Company             string          `json:"company" bson:"company"`
	Description         string          `json:"description" bson:"description"`
	Type                OpportunityType `json:"type" bson:"type"`
	Location            string          `json:"location" bson:"location"`
	IsRemote            bool            `json:"is_remote" bson:"is_remote"`
	Requirements        []string        `json:"requirements" bson:"requirements"`
	Responsibilities    []string        `json:"responsibilities" bson:"responsibilities"`
	Skills              []string        `json:"skills" bson:"skills"`
	Salary              Salary          `json:"salary" bson:"salary"`
	ApplicationDeadline time.Time       `json:"application_deadline" bson:"application_deadline"`
	PostedBy            string          `json:"posted_by" bson:"posted_by"`
	Applicants          []Applicant     `json:"applicants" bson:"applicants"`
	IsActive            bool            `json:"is_active" bson:"is_active"`
	CreatedAt           time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" bson:"updated_at"`
}

// ApplicationOf returns the user's own applicant entry, or nil.
func (o *Opportunity) ApplicationOf(userID string) *Applicant {
	for i := range o.Applicants {
		if o.Applicants[i].UserID == userID {
			return &o.Applicants[i]
		}
	}
	return nil
}

func (o *Opportunity) Application(applicationID string) *Applicant {
	for i := range o.Applicants {
		if o.Applicants[i].ID == applicationID {
			return &o.Applicants[i]
		}
	}
	return nil
}

// AddApplicant appends a pending entry; false when the user already applied.
func (o *Opportunity) AddApplicant(id, userID string, at time.Time) bool {
	if o.ApplicationOf(userID) != nil {
		return false
	}
	o.Applicants = append(o.Applicants, Applicant{
		ID:        id,
		UserID:    userID,
		Status:    ApplicationPending,
		AppliedAt: at,
	})
	return true
}

func (o *Opportunity) Clone() *Opportunity {
	cp := *o
	cp.Requirements = cloneSlice(o.Requirements)
	cp.Responsibilities = cloneSlice(o.Responsibilities)
	cp.Skills = cloneSlice(o.Skills)
	if o.Salary.Min != nil {
		v := *o.Salary.Min
		cp.Salary.Min = &v
	}
	if o.Salary.Max != nil {
		v := *o.Salary.Max
		cp.Salary.Max = &v
	}
	cp.Applicants = cloneSlice(o.Applicants)
	return &cp
}

func (o *Opportunity) Normalize() {
	o.Requirements = nonNil(o.Requirements)
	o.Responsibilities = nonNil(o.Responsibilities)
	o.Skills = nonNil(o.Skills)
	o.Applicants = nonNil(o.Applicants)
	if o.Salary.Currency == "" {
		o.Salary.Currency = DefaultCurrency
	}
}
