package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

type CourseRepository struct {
	docs documents[*entity.Course]
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{docs: documents[*entity.Course]{col: db.Collection(coursesCollection)}}
}

func (r *CourseRepository) Save(ctx context.Context, c *entity.Course) error {
	c.Normalize()
	return r.docs.save(ctx, c.ID, c)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.docs.get(ctx, id)
}

func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Course, error) {
	if len(ids) == 0 {
		return []*entity.Course{}, nil
	}
	found, err := r.docs.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
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
	return r.docs.find(ctx, courseFilter(f), newestFirst)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type ProjectRepository struct {
	docs documents[*entity.Project]
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{docs: documents[*entity.Project]{col: db.Collection(projectsCollection)}}
}

func (r *ProjectRepository) Save(ctx context.Context, p *entity.Project) error {
	p.Normalize()
	return r.docs.save(ctx, p.ID, p)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.docs.get(ctx, id)
}

func (r *ProjectRepository) Find(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, error) {
	return r.docs.find(ctx, projectFilter(f), newestFirst)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type OpportunityRepository struct {
	docs documents[*entity.Opportunity]
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{docs: documents[*entity.Opportunity]{col: db.Collection(opportunitiesCollection)}}
}

func (r *OpportunityRepository) Save(ctx context.Context, o *entity.Opportunity) error {
	o.Normalize()
	return r.docs.save(ctx, o.ID, o)
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id string) (*entity.Opportunity, error) {
	return r.docs.get(ctx, id)
}

func (r *OpportunityRepository) Find(ctx context.Context, f repository.OpportunityFilter) ([]*entity.Opportunity, error) {
	return r.docs.find(ctx, opportunityFilter(f), newestFirst)
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

var (
	_ repository.CourseRepository      = (*CourseRepository)(nil)
	_ repository.ProjectRepository     = (*ProjectRepository)(nil)
	_ repository.OpportunityRepository = (*OpportunityRepository)(nil)
	_ repository.Transactor            = (*Transactor)(nil)
)
