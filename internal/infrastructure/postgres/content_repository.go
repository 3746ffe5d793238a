package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

type CourseRepository struct {
	docs documents[*entity.Course]
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{docs: documents[*entity.Course]{pool: pool, table: "courses"}}
}

func (r *CourseRepository) Save(ctx context.Context, c *entity.Course) error {
	c.Normalize()
	return r.docs.save(ctx, c.ID, c.CreatedAt, c)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.docs.get(ctx, id)
}

// GetByIDs returns the courses in ids order; unknown ids are skipped.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Course, error) {
	if len(ids) == 0 {
		return []*entity.Course{}, nil
	}
	w := &where{}
	w.add("id = ANY(" + w.arg(ids) + ")")
	found, err := r.docs.find(ctx, w)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]*entity.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CourseRepository) Find(ctx context.Context, f repository.CourseFilter) ([]*entity.Course, error) {
	return r.docs.find(ctx, courseWhere(f))
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type ProjectRepository struct {
	docs documents[*entity.Project]
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{docs: documents[*entity.Project]{pool: pool, table: "projects"}}
}

func (r *ProjectRepository) Save(ctx context.Context, p *entity.Project) error {
	p.Normalize()
	return r.docs.save(ctx, p.ID, p.CreatedAt, p)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.docs.get(ctx, id)
}

func (r *ProjectRepository) Find(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	return r.docs.find(ctx, projectWhere(f))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type OpportunityRepository struct {
	docs documents[*entity.Opportunity]
}

func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{docs: documents[*entity.Opportunity]{pool: pool, table: "opportunities"}}
}

func (r *OpportunityRepository) Save(ctx context.Context, o *entity.Opportunity) error {
	o.Normalize()
	return r.docs.save(ctx, o.ID, o.CreatedAt, o)
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	return r.docs.get(ctx, id)
}

func (r *OpportunityRepository) Find(ctx context.Context, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	return r.docs.find(ctx, opportunityWhere(f))
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

// NewStore wires every repository to the same pool.
func NewStore(pool *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:         NewUserRepository(pool),
		Courses:       NewCourseRepository(pool),
		Projects:      NewProjectRepository(pool),
		Opportunities: NewOpportunityRepository(pool),
		Tx:            NewTxManager(pool),
	}
}

var (
	_ repository.CourseRepository      = (*CourseRepository)(nil)
	_ repository.ProjectRepository     = (*ProjectRepository)(nil)
	_ repository.OpportunityRepository = (*OpportunityRepository)(nil)
	_ repository.Transactor            = (*TxManager)(nil)
)
