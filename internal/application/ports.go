package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/edu-platform/pkg/helpers"
)

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// SearchIndex is the full-text mirror of courses, projects and opportunities.
type SearchIndex interface {
	Put(ctx context.Context, doc helpers.SearchDocument) error
	Remove(ctx context.Context, kind, id string) error
	Search(ctx context.Context, q, kind string, size int) ([]helpers.SearchDocument, error)
}

// Publisher puts JSON messages on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ResetTokens maps single-use password reset tokens to user ids.
type ResetTokens interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Take(ctx context.Context, token string) (userID string, ok bool, err error)
}

// Upload is a file received from a multipart form.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}
