package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

type UserRepository struct {
	col *collection[*entity.User]
	// emails guards uniqueness; keyed by lowercased email.
	emailMu sync.Mutex
	emails  map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		col:    newCollection((*entity.User).Clone),
		emails: map[string]string{},
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()
	key := strings.ToLower(u.Email)
	if _, taken := r.emails[key]; taken {
		return repository.ErrDuplicate
	}
	u.Normalize()
	r.emails[key] = u.ID
	r.col.put(u.ID, u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.col.get(id)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.emailMu.Lock()
	id, ok := r.emails[strings.ToLower(email)]
	r.emailMu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.col.get(id)
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()
	current, err := r.col.get(u.ID)
	if err != nil {
		return err
	}
	oldKey, newKey := strings.ToLower(current.Email), strings.ToLower(u.Email)
	if oldKey != newKey {
		if _, taken := r.emails[newKey]; taken {
			return repository.ErrDuplicate
		}
		delete(r.emails, oldKey)
		r.emails[newKey] = u.ID
	}
	u.Normalize()
	r.col.put(u.ID, u)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()
	current, err := r.col.get(id)
	if err != nil {
		return err
	}
	delete(r.emails, strings.ToLower(current.Email))
	return r.col.delete(id)
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	return r.col.filter(
		func(*entity.User) bool { return true },
		func(u *entity.User) time.Time { return u.CreatedAt },
		func(u *entity.User) string { return u.ID },
	), nil
}

func (r *UserRepository) Summaries(_ context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := make(map[string]entity.UserSummary, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		u, err := r.col.get(id)
		if err != nil {
			continue
		}
		out[id] = u.Summary()
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
