package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

func TestUserRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "Ana@Example.com"}))
	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.NotNil(t, got.EnrolledCourses)

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u2", Email: "bo@example.com"}))
	got.Email = "bo@example.com"
	assert.ErrorIs(t, repo.Update(ctx, got), repository.ErrDuplicate)

	got.Email = "ana2@example.com"
	require.NoError(t, repo.Update(ctx, got))
	_, err = repo.GetByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), repository.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "ana2@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositorySummariesSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Name: "Ana", Email: "a@x.io"}))

	out, err := repo.Summaries(ctx, []string{"u1", "ghost", "u1"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, entity.UserSummary{ID: "u1", Name: "Ana", Email: "a@x.io"}, out["u1"])
}

func TestCollectionReturnsClones(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()
	c := &entity.Course{ID: "c1", Title: "Go"}
	require.NoError(t, repo.Save(ctx, c))

	c.EnrolledStudents = append(c.EnrolledStudents, "leak")
	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, got.EnrolledStudents)

	got.Title = "changed"
	again, _ := repo.GetByID(ctx, "c1")
	assert.Equal(t, "Go", again.Title)
}

func TestCourseFindFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "a", Title: "Intro to Go", Difficulty: entity.CourseBeginner, CreatedAt: base}))
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "b", Title: "Rust", Description: "systems GO-adjacent", Difficulty: entity.CourseAdvanced, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "c", Title: "Python", Difficulty: entity.CourseBeginner, CreatedAt: base.Add(2 * time.Hour)}))

	all, err := repo.Find(ctx, repository.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, courseIDs(all))

	found, _ := repo.Find(ctx, repository.CourseFilter{Search: "go"})
	assert.Equal(t, []string{"b", "a"}, courseIDs(found))

	found, _ = repo.Find(ctx, repository.CourseFilter{Search: "go", Difficulty: entity.CourseBeginner})
	assert.Equal(t, []string{"a"}, courseIDs(found))
}

func TestCourseFindTiesFavourLatestInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "first", CreatedAt: at}))
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "second", CreatedAt: at}))

	found, _ := repo.Find(ctx, repository.CourseFilter{})
	assert.Equal(t, []string{"second", "first"}, courseIDs(found))
}

func TestCourseGetByIDsKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "a"}))
	require.NoError(t, repo.Save(ctx, &entity.Course{ID: "b"}))

	got, err := repo.GetByIDs(ctx, []string{"b", "gone", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, courseIDs(got))
}

func TestMatchProject(t *testing.T) {
	p := &entity.Project{
		Title:         "Chat bot",
		Description:   "LLM demo",
		CreatorID:     "u1",
		Collaborators: []string{"u2"},
		Difficulty:    entity.ProjectExpert,
		Status:        entity.ProjectOngoing,
	}
	cases := []struct {
		name string
		f    repository.ProjectFilter
		want bool
	}{
		{"empty", repository.ProjectFilter{}, true},
		{"difficulty", repository.ProjectFilter{Difficulty: entity.ProjectBeginner}, false},
		{"status", repository.ProjectFilter{Status: entity.ProjectOngoing}, true},
		{"search description", repository.ProjectFilter{Search: "llm"}, true},
		{"search miss", repository.ProjectFilter{Search: "game"}, false},
		{"creator member", repository.ProjectFilter{Member: "u1"}, true},
		{"collaborator member", repository.ProjectFilter{Member: "u2"}, true},
		{"stranger", repository.ProjectFilter{Member: "u3"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchProject(p, tc.f))
		})
	}
}

func TestMatchOpportunity(t *testing.T) {
	remote, onsite := true, false
	o := &entity.Opportunity{
		Title:      "Backend intern",
		Company:    "Acme",
		Location:   "Jakarta, ID",
		IsRemote:   true,
		Type:       entity.OpportunityInternship,
		IsActive:   true,
		Applicants: []entity.Applicant{{ID: "a1", UserID: "u1"}},
	}
	cases := []struct {
		name string
		f    repository.OpportunityFilter
		want bool
	}{
		{"empty", repository.OpportunityFilter{}, true},
		{"type", repository.OpportunityFilter{Type: entity.OpportunityJob}, false},
		{"location substring", repository.OpportunityFilter{Location: "jakarta"}, true},
		{"remote", repository.OpportunityFilter{IsRemote: &remote}, true},
		{"onsite", repository.OpportunityFilter{IsRemote: &onsite}, false},
		{"company search", repository.OpportunityFilter{Search: "acme"}, true},
		{"applicant", repository.OpportunityFilter{Applicant: "u1"}, true},
		{"not applicant", repository.OpportunityFilter{Applicant: "u2"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchOpportunity(o, tc.f))
		})
	}

	o.IsActive = false
	assert.False(t, matchOpportunity(o, repository.OpportunityFilter{ActiveOnly: true}))
	assert.True(t, matchOpportunity(o, repository.OpportunityFilter{}))
}

func TestStoreTransactorRunsFn(t *testing.T) {
	s := NewStore()
	called := false
	err := s.Tx.WithinTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func courseIDs(cs []*entity.Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestStoredRecordsKeepEmptyListsOnRead(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	now := time.Now()

	require.NoError(t, st.Courses.Save(ctx, &entity.Course{ID: "c1", CreatedAt: now}))
	require.NoError(t, st.Projects.Save(ctx, &entity.Project{ID: "p1", CreatedAt: now}))
	require.NoError(t, st.Opportunities.Save(ctx, &entity.Opportunity{ID: "o1", CreatedAt: now}))
	require.NoError(t, st.Users.Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com"}))

	course, err := st.Courses.GetByID(ctx, "c1")
	require.NoError(t, err)
	project, err := st.Projects.GetByID(ctx, "p1")
	require.NoError(t, err)
	opp, err := st.Opportunities.GetByID(ctx, "o1")
	require.NoError(t, err)
	user, err := st.Users.GetByID(ctx, "u1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		record any
		fields []string
	}{
		{"course", course, []string{"topics", "content", "enrolled_students", "ratings"}},
		{"project", project, []string{"technologies", "collaborators", "resources", "likes", "comments"}},
		{"opportunity", opp, []string{"requirements", "responsibilities", "skills", "applicants"}},
		{"user", user, []string{"enrolled_courses", "completed_courses", "projects"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.record)
			require.NoError(t, err)
			var got map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(b, &got))
			for _, f := range tt.fields {
				assert.JSONEq(t, `[]`, string(got[f]), f)
			}
		})
	}
}
