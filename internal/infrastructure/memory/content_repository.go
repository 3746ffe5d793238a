package memory

import (
	"context"
	"slices"
	"time"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

type CourseRepository struct {
	col *collection[*entity.Course]
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{col: newCollection((*entity.Course).Clone)}
}

func (r *CourseRepository) Save(_ context.Context, c *entity.Course) error {
	c.Normalize()
	r.col.put(c.ID, c)
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*entity.Course, error) {
	return r.col.get(id)
}

func (r *CourseRepository) GetByIDs(_ context.Context, ids []string) ([]*entity.Course, error) {
	out := make([]*entity.Course, 0, len(ids))
	for _, id := range ids {
		if c, err := r.col.get(id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CourseRepository) Find(_ context.Context, f repository.CourseFilter) ([]*entity.Course, error) {
	return r.col.filter(
		func(c *entity.Course) bool { return matchCourse(c, f) },
		func(c *entity.Course) time.Time { return c.CreatedAt },
		func(c *entity.Course) string { return c.ID },
	), nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	return r.col.delete(id)
}

func matchCourse(c *entity.Course, f repository.CourseFilter) bool {
	if f.Difficulty != "" && c.Difficulty != f.Difficulty {
		return false
	}
	if f.Search != "" && !containsFold(c.Title, f.Search) && !containsFold(c.Description, f.Search) {
		return false
	}
	return true
}

type ProjectRepository struct {
	col *collection[*entity.Project]
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{col: newCollection((*entity.Project).Clone)}
}

func (r *ProjectRepository) Save(_ context.Context, p *entity.Project) error {
	p.Normalize()
	r.col.put(p.ID, p)
	return nil
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (*entity.Project, error) {
	return r.col.get(id)
}

func (r *ProjectRepository) Find(_ context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	return r.col.filter(
		func(p *entity.Project) bool { return matchProject(p, f) },
		func(p *entity.Project) time.Time { return p.CreatedAt },
		func(p *entity.Project) string { return p.ID },
	), nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	return r.col.delete(id)
}

func matchProject(p *entity.Project, f repository.ProjectFilter) bool {
	if f.Difficulty != "" && p.Difficulty != f.Difficulty {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Search != "" && !containsFold(p.Title, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	if f.Member != "" && p.CreatorID != f.Member && !slices.Contains(p.Collaborators, f.Member) {
		return false
	}
	return true
}

type OpportunityRepository struct {
	col *collection[*entity.Opportunity]
}

func NewOpportunityRepository() *OpportunityRepository {
	return &OpportunityRepository{col: newCollection((*entity.Opportunity).Clone)}
}

func (r *OpportunityRepository) Save(_ context.Context, o *entity.Opportunity) error {
	o.Normalize()
	r.col.put(o.ID, o)
	return nil
}

func (r *OpportunityRepository) GetByID(_ context.Context, id string) (*entity.Opportunity, error) {
	return r.col.get(id)
}

func (r *OpportunityRepository) Find(_ context.Context, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	return r.col.filter(
		func(o *entity.Opportunity) bool { return matchOpportunity(o, f) },
		func(o *entity.Opportunity) time.Time { return o.CreatedAt },
		func(o *entity.Opportunity) string { return o.ID },
	), nil
}

func (r *OpportunityRepository) Delete(_ context.Context, id string) error {
	return r.col.delete(id)
}

func matchOpportunity(o *entity.Opportunity, f repository.OpportunityFilter) bool {
	if f.ActiveOnly && !o.IsActive {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	if f.Location != "" && !containsFold(o.Location, f.Location) {
		return false
	}
	if f.IsRemote != nil && o.IsRemote != *f.IsRemote {
		return false
	}
	if f.Search != "" &&
		!containsFold(o.Title, f.Search) &&
		!containsFold(o.Description, f.Search) &&
		!containsFold(o.Company, f.Search) {
		return false
	}
	if f.Applicant != "" && o.ApplicationOf(f.Applicant) == nil {
		return false
	}
	return true
}

var (
	_ repository.CourseRepository      = (*CourseRepository)(nil)
	_ repository.ProjectRepository     = (*ProjectRepository)(nil)
	_ repository.OpportunityRepository = (*OpportunityRepository)(nil)
)
