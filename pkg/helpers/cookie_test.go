package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(setup func(r *http.Request)) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		setup(r)
		c.Request = r
		return c
	}

	c := newCtx(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessCookie, Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")
	})
	assert.Equal(t, "from-cookie", TokenFromRequest(c, AccessCookie))

	c = newCtx(func(r *http.Request) { r.Header.Set("Authorization", "bearer  abc ") })
	assert.Equal(t, "abc", TokenFromRequest(c, AccessCookie))

	c = newCtx(func(r *http.Request) { r.Header.Set("Authorization", "Basic xyz") })
	assert.Equal(t, "", TokenFromRequest(c, AccessCookie))
}
