package store

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/config"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenMemory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), &config.Config{StoreDriver: "memory"}, quietLogger())
	require.NoError(t, err)
	defer closeFn()
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Courses)
	assert.NotNil(t, s.Projects)
	assert.NotNil(t, s.Opportunities)
	assert.NotNil(t, s.Tx)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreDriver: "bolt"}, quietLogger())
	assert.ErrorContains(t, err, "unknown store driver")
}
