package repository

import (
	"context"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
)

// CourseRepository is a document collection of courses.
// Save upserts the whole document by id; Find results are newest first.
type CourseRepository interface {
	Save(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Course, error)
	Find(ctx context.Context, f CourseFilter) ([]*entity.Course, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	Save(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Find(ctx context.Context, f ProjectFilter) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}

type OpportunityRepository interface {
	Save(ctx context.Context, o *entity.Opportunity) error
	GetByID(ctx context.Context, id string) (*entity.Opportunity, error)
	Find(ctx context.Context, f OpportunityFilter) ([]*entity.Opportunity, error)
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn so that every repository call made with the ctx it receives
// commits or rolls back together. Drivers without transactions run fn as-is and
// the writes inside it are independent.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles one driver's repositories.
type Store struct {
	Users         UserRepository
	Courses       CourseRepository
	Projects      ProjectRepository
	Opportunities OpportunityRepository
	Tx            Transactor
}
