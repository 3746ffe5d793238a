package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
)

func TestStatusOf(t *testing.T) {
	tests := map[apperror.Kind]int{
		apperror.KindNotFound:        http.StatusNotFound,
		apperror.KindValidation:      http.StatusBadRequest,
		apperror.KindConflict:        http.StatusBadRequest,
		apperror.KindForbidden:       http.StatusUnauthorized,
		apperror.KindUnauthenticated: http.StatusUnauthorized,
		apperror.KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusOf(kind), kind)
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("load: %w", apperror.NotFound("course not found")),
			wantCode: http.StatusNotFound,
			wantBody: `"message":"course not found"`,
		},
		{
			name:     "validation details",
			err:      apperror.Validation("validation failed").WithDetails(map[string]string{"title": "is required"}),
			wantCode: http.StatusBadRequest,
			wantBody: `"details":{"title":"is required"}`,
		},
		{
			name:     "internal hides cause",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `"message":"internal server error"`,
		},
		{
			name:     "storage missing",
			err:      fmt.Errorf("upload: %w", helpers.ErrStorageNotConfigured),
			wantCode: http.StatusServiceUnavailable,
			wantBody: `"code":"unavailable"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, helpers.NewNopLogger(), tt.err)

			require.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "connection refused")
			assert.True(t, c.IsAborted())
		})
	}
}

func TestQueryBool(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := func(target string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c
	}

	got, err := queryBool(ctx("/?isRemote=false"), "isRemote")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, *got)

	got, err = queryBool(ctx("/"), "isRemote")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = queryBool(ctx("/?isRemote=yes"), "isRemote")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
