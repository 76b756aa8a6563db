// Package server is the JSON HTTP surface of the portfolio.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/archive"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/editor"
	"github.com/Zachkp/portfolio/internal/model"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/objects"
	"github.com/Zachkp/portfolio/internal/publish"
)

// ObjectStore is object storage plus the receiving end of signed uploads.
type ObjectStore interface {
	objects.Storage
	Verify(id, expires, signature string) error
	Put(ctx context.Context, id string, r io.Reader) (string, error)
}

// Archive is the durable record of contacts and visits.
type Archive interface {
	VisitRecorder
	SaveContact(c model.Contact) error
	Stats() (*archive.Stats, error)
	HashIP(ip string) string
}

// Deps are the collaborators behind the routes. Archive and Notifier are
// optional.
type Deps struct {
	Content   *content.Service
	Editor    *editor.Files
	Publisher publish.Publisher
	Objects   ObjectStore
	Archive   Archive
	Notifier  notify.Notifier
	Auth      *Auth

	ResumePath string
	ResumeURL  string
}

type Server struct {
	Deps
	engine *gin.Engine
}

// New builds the gin engine and registers every route.
func New(d Deps) *Server {
	if d.Auth == nil {
		d.Auth = NewAuth("", "")
	}
	s := &Server{Deps: d}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if d.Archive != nil {
		r.Use(visitorTracking(d.Archive))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/projects", s.listProjects)
		api.GET("/projects/:id", s.getProject)
		api.GET("/timeline", s.listTimeline)
		api.GET("/testimonials", s.listTestimonials)

		api.GET("/content/hero", s.getHero)
		api.GET("/content/about", s.getAbout)
		api.GET("/content/passions", s.getPassions)
		api.GET("/content/contact", s.getContactInfo)

		api.POST("/contact", s.submitContact)
		api.GET("/resume", s.resume)

		api.POST("/login", s.login)
		api.GET("/logout", s.logout)
		api.GET("/auth/user", s.currentUser)
	}

	admin := r.Group("/api/admin")
	admin.Use(d.Auth.RequireOperator())
	{
		admin.GET("/content/*name", s.readContentFile)
		admin.PUT("/content/*name", s.writeContentFile)
		admin.POST("/publish", s.publish)
		admin.POST("/objects/upload", s.uploadURL)
		admin.GET("/stats", s.stats)
	}

	r.PUT("/objects/upload/:id", s.receiveUpload)
	r.GET("/objects/*path", s.getObject)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) hashIP(ip string) string {
	if s.Archive == nil {
		return "unknown"
	}
	return s.Archive.HashIP(ip)
}
