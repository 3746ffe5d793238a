package entity

import (
	"slices"
	"time"
)

type ProjectDifficulty string

const (
	ProjectBeginner     ProjectDifficulty = "beginner"
	ProjectIntermediate ProjectDifficulty = "intermediate"
	ProjectExpert       ProjectDifficulty = "expert"
)

func (d ProjectDifficulty) Valid() bool {
	switch d {
	case ProjectBeginner, ProjectIntermediate, ProjectExpert:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectOngoing, ProjectCompleted:
		return true
	}
	return false
}

// Comment is append-only; there is no edit or delete.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Project struct {
	ID            string            `json:"id" bson:"_id"`
	Title         string            `json:"title" bson:"title"`
	Description   string            `json:"description" bson:"description"`
	CreatorID     string            `json:"creator_id" bson:"creator_id"`
	Difficulty    ProjectDifficulty `json:"difficulty" bson:"difficulty"`
	Status        ProjectStatus     `json:"status" bson:"status"`
	Technologies  []string          `json:"technologies" bson:"technologies"`
	GithubURL     string            `json:"github_url,omitempty" bson:"github_url,omitempty"`
	DemoURL       string            `json:"demo_url,omitempty" bson:"demo_url,omitempty"`
	Thumbnail     string            `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Collaborators []string          `json:"collaborators" bson:"collaborators"`
	Resources     []Resource        `json:"resources" bson:"resources"`
	Likes         []string          `json:"likes" bson:"likes"`
	Comments      []Comment         `json:"comments" bson:"comments"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}

func (p *Project) IsCollaborator(userID string) bool {
	return slices.Contains(p.Collaborators, userID)
}

// CanEdit: creator or any collaborator.
func (p *Project) CanEdit(userID string) bool {
	return p.CreatorID == userID || p.IsCollaborator(userID)
}

// CanDelete: creator only.
func (p *Project) CanDelete(userID string) bool {
	return p.CreatorID == userID
}

// ToggleLike flips userID's membership in Likes and reports whether it is now liked.
func (p *Project) ToggleLike(userID string) bool {
	if i := slices.Index(p.Likes, userID); i >= 0 {
		p.Likes = slices.Delete(p.Likes, i, i+1)
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

func (p *Project) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// SetCollaborators replaces the collaborator set, dropping duplicates and the creator.
func (p *Project) SetCollaborators(ids []string) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == p.CreatorID || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	p.Collaborators = out
}

func (p *Project) Clone() *Project {
	cp := *p
	cp.Technologies = cloneSlice(p.Technologies)
	cp.Collaborators = cloneSlice(p.Collaborators)
	cp.Likes = cloneSlice(p.Likes)
	cp.Resources = cloneSlice(p.Resources)
	cp.Comments = cloneSlice(p.Comments)
	return &cp
}

func (p *Project) Normalize() {
	p.Technologies = nonNil(p.Technologies)
	p.Collaborators = nonNil(p.Collaborators)
	p.Resources = nonNil(p.Resources)
	p.Likes = nonNil(p.Likes)
	p.Comments = nonNil(p.Comments)
}
