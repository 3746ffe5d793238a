package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/metrics"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

type ProjectService struct {
	Base
}

func NewProjectService(base Base) *ProjectService {
	return &ProjectService{Base: base}
}

type CommentView struct {
	entity.Comment
	Author *entity.UserSummary `json:"author"`
}

type ProjectView struct {
	*entity.Project
	Creator       *entity.UserSummary  `json:"creator"`
	Collaborators []entity.UserSummary `json:"collaborators"`
	Comments      []CommentView        `json:"comments,omitempty"`
	LikeCount     int                  `json:"like_count"`
}

type CreateProjectInput struct {
	Title         string                   `json:"title" validate:"required"`
	Description   string                   `json:"description" validate:"required"`
	Difficulty    entity.ProjectDifficulty `json:"difficulty" validate:"required,project_level"`
	Status        entity.ProjectStatus     `json:"status" validate:"omitempty,project_status"`
	Technologies  []string                 `json:"technologies"`
	GithubURL     string                   `json:"github_url" validate:"omitempty,url"`
	DemoURL       string                   `json:"demo_url" validate:"omitempty,url"`
	Thumbnail     string                   `json:"thumbnail" validate:"omitempty,url"`
	Collaborators []string                 `json:"collaborators"`
	Resources     []entity.Resource        `json:"resources"`
}

type UpdateProjectInput struct {
	Title         *string                   `json:"title" validate:"omitempty,min=1"`
	Description   *string                   `json:"description" validate:"omitempty,min=1"`
	Difficulty    *entity.ProjectDifficulty `json:"difficulty" validate:"omitempty,project_level"`
	Status        *entity.ProjectStatus     `json:"status" validate:"omitempty,project_status"`
	Technologies  []string                  `json:"technologies"`
	GithubURL     *string                   `json:"github_url" validate:"omitempty,url"`
	DemoURL       *string                   `json:"demo_url" validate:"omitempty,url"`
	Thumbnail     *string                   `json:"thumbnail" validate:"omitempty,url"`
	Collaborators []string                  `json:"collaborators"`
	Resources     []entity.Resource         `json:"resources"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// LikeResult is the like set after a toggle.
type LikeResult struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}

func commentAuthors(comments []entity.Comment) []string {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	return ids
}

func commentViews(users map[string]entity.UserSummary, comments []entity.Comment) []CommentView {
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentView{Comment: c, Author: summaryPtr(users, c.UserID)})
	}
	return out
}

func (s *ProjectService) view(p *entity.Project, users map[string]entity.UserSummary, withComments bool) ProjectView {
	v := ProjectView{
		Project:       p,
		Creator:       summaryPtr(users, p.CreatorID),
		Collaborators: summaryList(users, p.Collaborators),
		LikeCount:     len(p.Likes),
	}
	if withComments {
		v.Comments = commentViews(users, p.Comments)
	}
	return v
}

func (s *ProjectService) views(ctx context.Context, projects []*entity.Project) ([]ProjectView, error) {
	var ids []string
	for _, p := range projects {
		ids = append(ids, p.CreatorID)
		ids = append(ids, p.Collaborators...)
	}
	users, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, s.view(p, users, false))
	}
	return out, nil
}

func (s *ProjectService) detail(ctx context.Context, p *entity.Project) (*ProjectView, error) {
	users, err := s.summaries(ctx, []string{p.CreatorID}, p.Collaborators, commentAuthors(p.Comments))
	if err != nil {
		return nil, err
	}
	v := s.view(p, users, true)
	return &v, nil
}

func (s *ProjectService) List(ctx context.Context, f repository.ProjectFilter) ([]ProjectView, error) {
	projects, err := s.Store.Projects.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return s.views(ctx, projects)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*ProjectView, error) {
	p, err := s.Store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return s.detail(ctx, p)
}

// Create inserts the project and appends it to the creator's projects list.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput, creatorID string) (*ProjectView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	p := &entity.Project{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  in.Description,
		CreatorID:    creatorID,
		Difficulty:   in.Difficulty,
		Status:       in.Status,
		Technologies: in.Technologies,
		GithubURL:    in.GithubURL,
		DemoURL:      in.DemoURL,
		Thumbnail:    in.Thumbnail,
		Resources:    in.Resources,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Status == "" {
		p.Status = entity.ProjectPlanning
	}
	p.SetCollaborators(in.Collaborators)

	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.Store.Users.GetByID(ctx, creatorID)
		if err != nil {
			return notFound(err, "user")
		}
		if err := s.Store.Projects.Save(ctx, p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		u.AddProject(p.ID)
		u.UpdatedAt = now
		if err := s.Store.Users.Update(ctx, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Search.indexProject(ctx, p)
	return s.detail(ctx, p)
}

// Update is allowed for the creator and collaborators. The creator never changes.
func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput, requesterID string) (*ProjectView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p, err := s.Store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if !p.CanEdit(requesterID) {
		return nil, apperror.Forbidden("not authorized to update this project")
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Difficulty != nil {
		p.Difficulty = *in.Difficulty
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Technologies != nil {
		p.Technologies = in.Technologies
	}
	if in.GithubURL != nil {
		p.GithubURL = *in.GithubURL
	}
	if in.DemoURL != nil {
		p.DemoURL = *in.DemoURL
	}
	if in.Thumbnail != nil {
		p.Thumbnail = *in.Thumbnail
	}
	if in.Collaborators != nil {
		p.SetCollaborators(in.Collaborators)
	}
	if in.Resources != nil {
		p.Resources = in.Resources
	}
	p.UpdatedAt = s.now()
	if err := s.Store.Projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	s.Search.indexProject(ctx, p)
	return s.detail(ctx, p)
}

// Delete is creator-only and drops the id from the creator's projects list.
func (s *ProjectService) Delete(ctx context.Context, id, requesterID string) error {
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.Store.Projects.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "project")
		}
		if !p.CanDelete(requesterID) {
			return apperror.Forbidden("not authorized to delete this project")
		}
		if err := s.Store.Projects.Delete(ctx, id); err != nil {
			return notFound(err, "project")
		}
		u, err := s.Store.Users.GetByID(ctx, p.CreatorID)
		if err != nil {
			// creator already gone; nothing to unlink
			return ignoreNotFound(err, "user")
		}
		if u.RemoveProject(id) {
			u.UpdatedAt = s.now()
			if err := s.Store.Users.Update(ctx, u); err != nil {
				return fmt.Errorf("save user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Search.remove(ctx, KindProject, id)
	return nil
}

func (s *ProjectService) ToggleLike(ctx context.Context, id, userID string) (*LikeResult, error) {
	var res LikeResult
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.Store.Projects.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "project")
		}
		res.Liked = p.ToggleLike(userID)
		p.UpdatedAt = s.now()
		if err := s.Store.Projects.Save(ctx, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		res.Likes = p.Likes
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Liked {
		metrics.RecordEvent(metrics.EventLike)
	} else {
		metrics.RecordEvent(metrics.EventUnlike)
	}
	return &res, nil
}

// Comment appends a comment and returns the stored comment list with authors.
func (s *ProjectService) Comment(ctx context.Context, id, userID string, in CommentInput) ([]CommentView, error) {
	in.Text = strings.TrimSpace(in.Text)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.Store.Projects.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "project")
		}
		now := s.now()
		p.AddComment(entity.Comment{ID: s.newID(), UserID: userID, Text: in.Text, CreatedAt: now})
		p.UpdatedAt = now
		if err := s.Store.Projects.Save(ctx, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventComment)

	p, err := s.Store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	users, err := s.summaries(ctx, commentAuthors(p.Comments))
	if err != nil {
		return nil, err
	}
	return commentViews(users, p.Comments), nil
}

// MyProjects lists projects the user created or collaborates on, newest first.
func (s *ProjectService) MyProjects(ctx context.Context, userID string) ([]ProjectView, error) {
	return s.List(ctx, repository.ProjectFilter{Member: userID})
}

func (s *ProjectService) UploadThumbnail(ctx context.Context, id, requesterID string, f Upload) (*ProjectView, error) {
	p, err := s.Store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if !p.CanEdit(requesterID) {
		return nil, apperror.Forbidden("not authorized to update this project")
	}
	url, err := s.uploadImage(ctx, "projects", p.ID, f)
	if err != nil {
		return nil, err
	}
	p.Thumbnail = url
	p.UpdatedAt = s.now()
	if err := s.Store.Projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.detail(ctx, p)
}
