package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
)

var (
	// ErrNotFound is returned when an id (or email) does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key (user email) is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
	// Summaries resolves ids to name/email projections; unknown ids are absent from the map.
	Summaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error)
}
