package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	mailtpl "github.com/oksasatya/edu-platform/pkg/mailer/templates"
)

func TestCourseEnroll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	student := f.user(t, "Student")
	c := f.course(t, "Go Basics", admin.ID)

	require.NoError(t, f.courses.Enroll(ctx, c.ID, student.ID))

	got, err := f.courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID}, got.EnrolledStudents)
	require.Len(t, got.Students, 1)
	assert.Equal(t, student.Email, got.Students[0].Email)

	u, err := f.store.Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, u.EnrolledCourses)
	assert.Contains(t, f.pub.templates(), mailtpl.CourseEnrollment)

	err = f.courses.Enroll(ctx, c.ID, student.ID)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.EqualError(t, err, "already enrolled in this course")

	got, err = f.courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, got.EnrolledStudents, 1)
	u, err = f.store.Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, u.EnrolledCourses, 1)
}

func TestCourseEnrollUnknownCourse(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, "Student")
	err := f.courses.Enroll(context.Background(), "missing", student.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.EqualError(t, err, "course not found")
}

func TestCourseRateUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	student := f.user(t, "Student")
	c := f.course(t, "Go Basics", admin.ID)
	require.NoError(t, f.courses.Enroll(ctx, c.ID, student.ID))

	_, err := f.courses.Rate(ctx, c.ID, student.ID, RateCourseInput{Rating: 5, Review: "great"})
	require.NoError(t, err)
	got, err := f.courses.Rate(ctx, c.ID, student.ID, RateCourseInput{Rating: 3, Review: "ok"})
	require.NoError(t, err)

	require.Len(t, got.Ratings, 1)
	assert.Equal(t, entity.Rating{UserID: student.ID, Rating: 3, Review: "ok"}, got.Ratings[0])
	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)
}

func TestCourseRateRequiresEnrollment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	outsider := f.user(t, "Outsider")
	c := f.course(t, "Go Basics", admin.ID)

	_, err := f.courses.Rate(ctx, c.ID, outsider.ID, RateCourseInput{Rating: 4})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	assert.EqualError(t, err, "you must be enrolled to rate this course")

	_, err = f.courses.Rate(ctx, c.ID, outsider.ID, RateCourseInput{Rating: 6})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCourseListFiltersAndSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	price := 0.0
	mk := func(title string, d entity.CourseDifficulty) {
		_, err := f.courses.Create(ctx, CreateCourseInput{
			Title: title, Description: "about " + title, Difficulty: d, Duration: 1, Price: &price,
		}, admin.ID)
		require.NoError(t, err)
	}
	mk("First", entity.CourseBeginner)
	mk("Second", entity.CourseIntermediate)
	mk("Third", entity.CourseBeginner)

	got, err := f.courses.List(ctx, repository.CourseFilter{Difficulty: entity.CourseBeginner})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Third", got[0].Title)
	assert.Equal(t, "First", got[1].Title)
	for _, c := range got {
		assert.Equal(t, entity.CourseBeginner, c.Difficulty)
		require.NotNil(t, c.Instructor)
		assert.Equal(t, admin.ID, c.Instructor.ID)
	}

	got, err = f.courses.List(ctx, repository.CourseFilter{Search: "SECOND"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Second", got[0].Title)
}

func TestCourseCreateValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.courses.Create(context.Background(), CreateCourseInput{Title: "x", Duration: -1}, "u")
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Contains(t, ae.Details, "description")
	assert.Contains(t, ae.Details, "difficulty")
	assert.Contains(t, ae.Details, "duration")
	assert.Contains(t, ae.Details, "price")
}

func TestCourseUpdateMergesProvidedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	c := f.course(t, "Go Basics", admin.ID)

	title := "Go Advanced"
	published := true
	got, err := f.courses.Update(ctx, c.ID, UpdateCourseInput{Title: &title, IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, "Go Advanced", got.Title)
	assert.True(t, got.IsPublished)
	assert.Equal(t, c.Description, got.Description)
	assert.Equal(t, admin.ID, got.InstructorID)
	assert.Equal(t, "Go Advanced", f.index.docs[KindCourse+"/"+c.ID].Title)

	_, err = f.courses.Update(ctx, "missing", UpdateCourseInput{Title: &title})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCourseDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	c := f.course(t, "Go Basics", admin.ID)

	require.NoError(t, f.courses.Delete(ctx, c.ID))
	assert.NotContains(t, f.index.docs, KindCourse+"/"+c.ID)
	assert.True(t, apperror.Is(f.courses.Delete(ctx, c.ID), apperror.KindNotFound))
}

func TestMyCoursesKeepsOrderAndSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	student := f.user(t, "Student")
	a := f.course(t, "A", admin.ID)
	b := f.course(t, "B", admin.ID)
	c := f.course(t, "C", admin.ID)

	require.NoError(t, f.courses.Enroll(ctx, b.ID, student.ID))
	require.NoError(t, f.courses.Enroll(ctx, a.ID, student.ID))
	require.NoError(t, f.courses.Enroll(ctx, c.ID, student.ID))
	require.NoError(t, f.courses.Delete(ctx, a.ID))

	got, err := f.courses.MyCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}

func TestCourseUploadThumbnail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	c := f.course(t, "Go Basics", admin.ID)

	got, err := f.courses.UploadThumbnail(ctx, c.ID, Upload{Reader: strReader("img"), ContentType: "image/png"})
	require.NoError(t, err)
	require.Len(t, f.storage.paths, 1)
	assert.Equal(t, "https://cdn.test/"+f.storage.paths[0], got.Thumbnail)

	_, err = f.courses.UploadThumbnail(ctx, c.ID, Upload{Reader: strReader("x"), ContentType: "text/plain"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestListUnknownEnumFiltersMatchNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Ana")
	f.course(t, "Go", u.ID)
	f.project(t, "Robot", u.ID)
	f.opportunity(t, "Intern", u.ID)

	courses, err := f.courses.List(ctx, repository.CourseFilter{Difficulty: "wizard"})
	require.NoError(t, err)
	assert.Empty(t, courses)

	projects, err := f.projects.List(ctx, repository.ProjectFilter{Difficulty: "wizard"})
	require.NoError(t, err)
	assert.Empty(t, projects)
	projects, err = f.projects.List(ctx, repository.ProjectFilter{Status: "paused"})
	require.NoError(t, err)
	assert.Empty(t, projects)

	opps, err := f.opps.List(ctx, repository.OpportunityFilter{Type: "gig"})
	require.NoError(t, err)
	assert.Empty(t, opps)
}
