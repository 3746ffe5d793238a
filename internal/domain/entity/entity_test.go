package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseAddStudentIsUnique(t *testing.T) {
	c := &Course{}
	assert.True(t, c.AddStudent("u1"))
	assert.False(t, c.AddStudent("u1"))
	assert.Equal(t, []string{"u1"}, c.EnrolledStudents)
	assert.True(t, c.HasStudent("u1"))
	assert.False(t, c.HasStudent("u2"))
}

func TestCourseUpsertRatingKeepsPosition(t *testing.T) {
	c := &Course{}
	assert.True(t, c.UpsertRating("u1", 5, "great"))
	assert.True(t, c.UpsertRating("u2", 4, "good"))
	assert.False(t, c.UpsertRating("u1", 3, "ok"))

	require.Len(t, c.Ratings, 2)
	assert.Equal(t, Rating{UserID: "u1", Rating: 3, Review: "ok"}, c.Ratings[0])
	assert.InDelta(t, 3.5, c.AverageRating(), 0.0001)
}

func TestCourseCloneDoesNotAlias(t *testing.T) {
	c := &Course{
		EnrolledStudents: []string{"u1"},
		Ratings:          []Rating{{UserID: "u1", Rating: 5}},
		Content:          []CourseModule{{Title: "intro", Resources: []Resource{{Title: "slides"}}}},
	}
	cp := c.Clone()
	cp.AddStudent("u2")
	cp.Ratings[0].Rating = 1
	cp.Content[0].Resources[0].Title = "changed"

	assert.Equal(t, []string{"u1"}, c.EnrolledStudents)
	assert.Equal(t, float64(5), c.Ratings[0].Rating)
	assert.Equal(t, "slides", c.Content[0].Resources[0].Title)
}

func TestCloneKeepsEmptySlicesEmpty(t *testing.T) {
	c := &Course{}
	c.Normalize()
	cp := c.Clone()
	assert.NotNil(t, cp.EnrolledStudents)
	assert.NotNil(t, cp.Ratings)
	assert.NotNil(t, cp.Topics)

	p := &Project{}
	p.Normalize()
	assert.NotNil(t, p.Clone().Comments)

	o := &Opportunity{}
	o.Normalize()
	assert.NotNil(t, o.Clone().Applicants)

	u := &User{}
	u.Normalize()
	assert.NotNil(t, u.Clone().EnrolledCourses)

	assert.Nil(t, cloneSlice[string](nil))
}

func TestProjectToggleLike(t *testing.T) {
	p := &Project{Likes: []string{"a"}}
	assert.True(t, p.ToggleLike("b"))
	assert.Equal(t, []string{"a", "b"}, p.Likes)
	assert.False(t, p.ToggleLike("b"))
	assert.Equal(t, []string{"a"}, p.Likes)
}

func TestProjectPermissions(t *testing.T) {
	p := &Project{CreatorID: "owner", Collaborators: []string{"helper"}}
	assert.True(t, p.CanEdit("owner"))
	assert.True(t, p.CanEdit("helper"))
	assert.False(t, p.CanEdit("stranger"))
	assert.True(t, p.CanDelete("owner"))
	assert.False(t, p.CanDelete("helper"))
}

func TestProjectSetCollaboratorsDropsCreatorAndDuplicates(t *testing.T) {
	p := &Project{CreatorID: "owner"}
	p.SetCollaborators([]string{"a", "owner", "a", "", "b"})
	assert.Equal(t, []string{"a", "b"}, p.Collaborators)
}

func TestOpportunityAddApplicant(t *testing.T) {
	o := &Opportunity{}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.True(t, o.AddApplicant("app-1", "u1", at))
	assert.False(t, o.AddApplicant("app-2", "u1", at))

	require.Len(t, o.Applicants, 1)
	assert.Equal(t, ApplicationPending, o.Applicants[0].Status)
	assert.Equal(t, "app-1", o.Application("app-1").ID)
	assert.Nil(t, o.Application("missing"))
	assert.Equal(t, "u1", o.ApplicationOf("u1").UserID)
}

func TestOpportunityNormalizeDefaultsCurrency(t *testing.T) {
	o := &Opportunity{}
	o.Normalize()
	assert.Equal(t, DefaultCurrency, o.Salary.Currency)
	assert.NotNil(t, o.Applicants)
	assert.NotNil(t, o.Skills)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CourseAdvanced.Valid())
	assert.False(t, CourseDifficulty("expert").Valid())
	assert.True(t, ProjectExpert.Valid())
	assert.False(t, ProjectDifficulty("advanced").Valid())
	assert.True(t, ProjectOngoing.Valid())
	assert.True(t, OpportunityInternship.Valid())
	assert.False(t, ApplicationStatus("hired").Valid())
	assert.True(t, RoleAdmin.Valid())
}

func TestUserProjectsList(t *testing.T) {
	u := &User{}
	assert.True(t, u.AddProject("p1"))
	assert.False(t, u.AddProject("p1"))
	assert.True(t, u.AddEnrolledCourse("c1"))
	assert.False(t, u.AddEnrolledCourse("c1"))
	assert.True(t, u.RemoveProject("p1"))
	assert.False(t, u.RemoveProject("p1"))
	assert.Empty(t, u.Projects)
}
