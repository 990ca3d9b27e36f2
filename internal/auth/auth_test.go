package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	want := Identity{ID: "u1", Email: "u1@example.com", Name: "User One"}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	Attach(c, want)

	got, ok := FromContext(c)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFromContextMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := FromContext(c)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc123")

	assert.Equal(t, "abc123", BearerToken(c))
}
