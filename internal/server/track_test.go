package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type chanRecorder chan string

func (r chanRecorder) RecordVisit(_, _, path string) error {
	r <- path
	return nil
}

func TestVisitorTracking(t *testing.T) {
	rec := make(chanRecorder, 8)
	r := gin.New()
	r.Use(visitorTracking(rec))
	r.GET("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, path string, dnt bool) {
		req := httptest.NewRequest(method, path, nil)
		if dnt {
			req.Header.Set("DNT", "1")
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	send(http.MethodGet, "/api/timeline", true)
	send(http.MethodGet, "/api/admin/stats", false)
	send(http.MethodGet, "/objects/uploads/x", false)
	send(http.MethodPost, "/api/contact", false)
	send(http.MethodGet, "/api/projects", false)

	select {
	case path := <-rec:
		assert.Equal(t, "/api/projects", path)
	case <-time.After(2 * time.Second):
		t.Fatal("visit not recorded")
	}

	select {
	case path := <-rec:
		t.Fatalf("unexpected visit recorded: %s", path)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUntracked(t *testing.T) {
	assert.True(t, untracked("/favicon.ico"))
	assert.True(t, untracked("/api/auth/user"))
	assert.False(t, untracked("/"))
	assert.False(t, untracked("/api/content/hero"))
}
