package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("course not found"), KindNotFound},
		{"validation", Validation("title is required"), KindValidation},
		{"conflict", Conflict("already enrolled"), KindConflict},
		{"forbidden", Forbidden("not allowed"), KindForbidden},
		{"unauthenticated", Unauthenticated("missing token"), KindUnauthenticated},
		{"wrapped", fmt.Errorf("enroll: %w", Conflict("already enrolled")), KindConflict},
		{"plain", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := NotFound("%s %q not found", "course", "abc")
	assert.Equal(t, `course "abc" not found`, err.Error())

	assert.Equal(t, "50% done", Validation("%d%% done", 50).Error())
	assert.Equal(t, "plain message", Conflict("plain message").Error())
}

func TestWrapAndDetails(t *testing.T) {
	cause := errors.New("db down")
	err := Validation("validation failed").WithDetails(map[string]string{"title": "is required"}).Wrap(cause)

	require.True(t, errors.Is(err, cause))
	ae, ok := As(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	assert.Equal(t, "is required", ae.Details["title"])
	assert.True(t, Is(err, KindValidation))
	assert.False(t, Is(nil, KindValidation))
}
