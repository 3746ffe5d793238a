package repository

import "github.com/oksasatya/edu-platform/internal/domain/entity"

// Filters are typed predicates; the zero value of a field means "no constraint".
// Each driver translates them with its own query builder.

type CourseFilter struct {
	Difficulty entity.CourseDifficulty
	// Search is a case-insensitive substring matched against title or description.
	Search string
}

type ProjectFilter struct {
	Difficulty entity.ProjectDifficulty
	Status     entity.ProjectStatus
	Search     string
	// Member matches projects where the user is the creator or a collaborator.
	Member string
}

type OpportunityFilter struct {
	Type entity.OpportunityType
	// Location is a case-insensitive substring.
	Location string
	IsRemote *bool
	// Search is matched against title, description or company.
	Search     string
	ActiveOnly bool
	// Applicant matches opportunities holding an application by this user.
	Applicant string
}
