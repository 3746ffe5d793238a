package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/internal/infrastructure/memory"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/mailer"
)

func init() {
	helpers.BcryptCost = bcrypt.MinCost
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func (p *fakePublisher) templates() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.jobs))
	for _, j := range p.jobs {
		out = append(out, j.Template)
	}
	return out
}

type fakeIndex struct {
	docs map[string]helpers.SearchDocument
	err  error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]helpers.SearchDocument{}} }

func (f *fakeIndex) Put(_ context.Context, doc helpers.SearchDocument) error {
	if f.err != nil {
		return f.err
	}
	f.docs[doc.Kind+"/"+doc.ID] = doc
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, kind, id string) error {
	delete(f.docs, kind+"/"+id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, q, kind string, _ int) ([]helpers.SearchDocument, error) {
	var out []helpers.SearchDocument
	for _, d := range f.docs {
		if (kind == "" || d.Kind == kind) && strings.Contains(strings.ToLower(d.Title), strings.ToLower(q)) {
			out = append(out, d)
		}
	}
	return out, f.err
}

type fakeStorage struct {
	paths []string
}

func (f *fakeStorage) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	return "https://cdn.test/" + objectPath, nil
}

type fakeResets struct {
	tokens map[string]string
}

func (f *fakeResets) Put(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResets) Take(_ context.Context, token string) (string, bool, error) {
	id, ok := f.tokens[token]
	delete(f.tokens, token)
	return id, ok, nil
}

// fixture wires every service to one memory store with a ticking clock and
// sequential ids, so ordering assertions are deterministic.
type fixture struct {
	store    *repository.Store
	pub      *fakePublisher
	index    *fakeIndex
	storage  *fakeStorage
	resets   *fakeResets
	courses  *CourseService
	projects *ProjectService
	opps     *OpportunityService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   memory.NewStore(),
		pub:     &fakePublisher{},
		index:   newFakeIndex(),
		storage: &fakeStorage{},
		resets:  &fakeResets{tokens: map[string]string{}},
	}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int
	base := NewBase(f.store, helpers.NewNopLogger())
	base.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	base.NewID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	cfg := &config.Config{MailSendEnabled: true, AppName: "edu-platform", CompanyName: "Edu", CourseURL: "https://edu.test/courses"}
	base.Notify = NewNotifier(f.pub, cfg, base.Logger)
	base.Search = NewSearchService(f.index, base.Logger)
	base.Storage = f.storage

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	f.courses = NewCourseService(base)
	f.projects = NewProjectService(base)
	f.opps = NewOpportunityService(base)
	f.users = NewUserService(base, jwt, nil, f.resets, 0)
	return f
}

func (f *fixture) user(t *testing.T, name string) *entity.User {
	t.Helper()
	u, _, err := f.users.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) course(t *testing.T, title, instructorID string) *CourseView {
	t.Helper()
	price := 10.0
	c, err := f.courses.Create(context.Background(), CreateCourseInput{
		Title:       title,
		Description: title + " description",
		Difficulty:  entity.CourseBeginner,
		Duration:    4,
		Price:       &price,
	}, instructorID)
	require.NoError(t, err)
	return c
}

func (f *fixture) project(t *testing.T, title, creatorID string, collaborators ...string) *ProjectView {
	t.Helper()
	p, err := f.projects.Create(context.Background(), CreateProjectInput{
		Title:         title,
		Description:   title + " description",
		Difficulty:    entity.ProjectIntermediate,
		Collaborators: collaborators,
	}, creatorID)
	require.NoError(t, err)
	return p
}

func (f *fixture) opportunity(t *testing.T, title, posterID string) *OpportunityView {
	t.Helper()
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	o, err := f.opps.Create(context.Background(), CreateOpportunityInput{
		Title:               title,
		Company:             "Acme",
		Description:         title + " description",
		Type:                entity.OpportunityJob,
		Location:            "Jakarta",
		ApplicationDeadline: &deadline,
	}, posterID)
	require.NoError(t, err)
	return o
}

func strReader(s string) io.Reader { return strings.NewReader(s) }
