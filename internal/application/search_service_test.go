package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/pkg/apperror"
)

func TestSearchMirrorsContent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	f.course(t, "Go Basics", admin.ID)
	f.project(t, "Go Robot", admin.ID)
	f.opportunity(t, "Go Developer", admin.ID)

	s := f.courses.Search
	got, err := s.Search(ctx, "go", "", 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.Search(ctx, "go", KindProject, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go Robot", got[0].Title)
}

func TestSearchValidation(t *testing.T) {
	s := NewSearchService(nil, nil)
	_, err := s.Search(context.Background(), "", "", 10)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = s.Search(context.Background(), "go", "user", 10)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	got, err := s.Search(context.Background(), "go", "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIndexFailureDoesNotFailWrites(t *testing.T) {
	f := newFixture(t)
	f.index.err = errors.New("es down")
	f.pub.err = errors.New("mq down")
	admin := f.user(t, "Admin")
	c := f.course(t, "Go Basics", admin.ID)
	assert.NotEmpty(t, c.ID)
}
