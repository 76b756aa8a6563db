package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// VisitRecorder stores one privacy-hashed visit.
type VisitRecorder interface {
	RecordVisit(ip, userAgent, path string) error
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/objects/",
	"/api/admin/",
	"/api/login",
	"/api/logout",
	"/api/auth/",
	"/healthz",
	"/favicon",
}

// visitorTracking records GET requests in the background. Requests carrying
// DNT: 1 are never recorded.
func visitorTracking(rec VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			if err := rec.RecordVisit(ip, ua, path); err != nil {
				log.Printf("Error tracking visitor: %v", err)
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
