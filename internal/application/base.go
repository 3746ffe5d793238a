package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
)

// Base holds the collaborators every domain service shares.
// Search, Notify and Storage may be nil; their side effects are then skipped.
type Base struct {
	Store   *repository.Store
	Search  *SearchService
	Notify  *Notifier
	Storage ObjectStorage
	Logger  *logrus.Logger
	Now     func() time.Time
	NewID   func() string
}

func NewBase(store *repository.Store, logger *logrus.Logger) Base {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return Base{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

func (b *Base) now() time.Time {
	if b.Now == nil {
		return time.Now().UTC()
	}
	return b.Now().UTC()
}

func (b *Base) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}

func (b *Base) log() logrus.FieldLogger {
	if b.Logger == nil {
		return helpers.NewNopLogger()
	}
	return b.Logger
}

// notFound maps repository.ErrNotFound to an apperror NotFound for what, and wraps anything else.
func notFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("%s not found", what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// summaries resolves ids to user summaries in one round trip.
func (b *Base) summaries(ctx context.Context, ids ...[]string) (map[string]entity.UserSummary, error) {
	var all []string
	seen := map[string]bool{}
	for _, group := range ids {
		for _, id := range group {
			if id != "" && !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
	}
	if len(all) == 0 {
		return map[string]entity.UserSummary{}, nil
	}
	out, err := b.Store.Users.Summaries(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return out, nil
}

func summaryPtr(m map[string]entity.UserSummary, id string) *entity.UserSummary {
	if s, ok := m[id]; ok {
		return &s
	}
	return nil
}

// summaryList keeps ids order and skips users that no longer exist.
func summaryList(m map[string]entity.UserSummary, ids []string) []entity.UserSummary {
	out := make([]entity.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := m[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// uploadImage validates f and stores it under dir/<owner>/<uuid><ext>.
func (b *Base) uploadImage(ctx context.Context, dir, owner string, f Upload) (string, error) {
	if b.Storage == nil {
		return "", helpers.ErrStorageNotConfigured
	}
	ext, ok := imageTypes[strings.ToLower(f.ContentType)]
	if !ok {
		return "", apperror.Validation("unsupported image type").
			WithDetails(map[string]string{"file": "must be a jpeg, png, webp or gif image"})
	}
	objectPath := path.Join(dir, owner, b.newID()+ext)
	url, err := b.Storage.Upload(ctx, objectPath, f.ContentType, f.Reader)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return url, nil
}

// ignoreNotFound treats a missing record as success.
func ignoreNotFound(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
