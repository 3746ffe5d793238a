package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
)

const (
	KindCourse      = "course"
	KindProject     = "project"
	KindOpportunity = "opportunity"
)

// SearchService mirrors content into the search index and queries it.
// Index writes are best effort: failures are logged and never fail the caller.
type SearchService struct {
	Index  SearchIndex
	Logger *logrus.Logger
}

func NewSearchService(index SearchIndex, logger *logrus.Logger) *SearchService {
	return &SearchService{Index: index, Logger: logger}
}

func (s *SearchService) enabled() bool { return s != nil && s.Index != nil }

func (s *SearchService) put(ctx context.Context, doc helpers.SearchDocument) {
	if !s.enabled() {
		return
	}
	if err := s.Index.Put(ctx, doc); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"kind": doc.Kind, "id": doc.ID}).Warn("search index put failed")
	}
}

func (s *SearchService) remove(ctx context.Context, kind, id string) {
	if !s.enabled() {
		return
	}
	if err := s.Index.Remove(ctx, kind, id); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id}).Warn("search index remove failed")
	}
}

func (s *SearchService) indexCourse(ctx context.Context, c *entity.Course) {
	s.put(ctx, helpers.SearchDocument{
		ID: c.ID, Kind: KindCourse, Title: c.Title, Description: c.Description,
		Tags: append([]string{string(c.Difficulty)}, c.Topics...), CreatedAt: c.CreatedAt,
	})
}

func (s *SearchService) indexProject(ctx context.Context, p *entity.Project) {
	s.put(ctx, helpers.SearchDocument{
		ID: p.ID, Kind: KindProject, Title: p.Title, Description: p.Description,
		Tags: append([]string{string(p.Difficulty), string(p.Status)}, p.Technologies...), CreatedAt: p.CreatedAt,
	})
}

func (s *SearchService) indexOpportunity(ctx context.Context, o *entity.Opportunity) {
	if !o.IsActive {
		s.remove(ctx, KindOpportunity, o.ID)
		return
	}
	tags := append([]string{string(o.Type), o.Company, o.Location}, o.Skills...)
	s.put(ctx, helpers.SearchDocument{
		ID: o.ID, Kind: KindOpportunity, Title: o.Title, Description: o.Description,
		Tags: tags, CreatedAt: o.CreatedAt,
	})
}

// Search returns matching documents. Without an index it returns an empty list.
func (s *SearchService) Search(ctx context.Context, q, kind string, size int) ([]helpers.SearchDocument, error) {
	if q == "" {
		return nil, apperror.Validation("search query is required").WithDetails(map[string]string{"q": "is required"})
	}
	switch kind {
	case "", KindCourse, KindProject, KindOpportunity:
	default:
		return nil, apperror.Validation("unknown kind %q", kind).
			WithDetails(map[string]string{"kind": "must be one of: course, project, opportunity"})
	}
	if !s.enabled() {
		return []helpers.SearchDocument{}, nil
	}
	docs, err := s.Index.Search(ctx, q, kind, size)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return docs, nil
}
