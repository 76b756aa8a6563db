package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"maps"
	"mime"
	"net/http"
	"os"
	"path"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/model"
)

// serveContent answers a read endpoint from the source chosen by ?source=.
func serveContent[T any](c *gin.Context, fetch func(content.Mode) (T, error)) {
	mode, err := content.ParseMode(c.Query("source"))
	if err != nil {
		respondError(c, err)
		return
	}
	v, err := fetch(mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) listProjects(c *gin.Context) { serveContent(c, s.Content.Projects) }

func (s *Server) getProject(c *gin.Context) {
	id := c.Param("id")
	serveContent(c, func(m content.Mode) (model.Project, error) { return s.Content.Project(m, id) })
}

func (s *Server) listTimeline(c *gin.Context) { serveContent(c, s.Content.Timeline) }

func (s *Server) listTestimonials(c *gin.Context) { serveContent(c, s.Content.Testimonials) }

func (s *Server) getHero(c *gin.Context) { serveContent(c, s.Content.Hero) }

func (s *Server) getAbout(c *gin.Context) { serveContent(c, s.Content.About) }

func (s *Server) getPassions(c *gin.Context) { serveContent(c, s.Content.Passions) }

func (s *Server) getContactInfo(c *gin.Context) { serveContent(c, s.Content.ContactInfo) }

func (s *Server) submitContact(c *gin.Context) {
	var in model.ContactInput
	if err := decodeJSON(c, &in); err != nil {
		respondError(c, err)
		return
	}

	contact, err := s.Content.SubmitContact(in)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data", "errors": verr.Fields})
			return
		}
		respondError(c, err)
		return
	}

	if s.Archive != nil {
		if err := s.Archive.SaveContact(contact); err != nil {
			log.Printf("Error archiving contact %s: %v", contact.ID, err)
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.ContactReceived(contact); err != nil {
			log.Printf("Error sending email for contact %s: %v", contact.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact form submitted successfully",
		"contact": contact,
	})
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched so that field validation can report what is missing.
func decodeJSON(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return model.Invalid("body", "could not be read")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	err = json.Unmarshal(body, dst)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &typeErr):
		return typeErrors(body, dst)
	default:
		return model.Invalid("body", "must be a JSON object")
	}
}

// typeErrors decodes each member of body on its own so every field of the
// wrong type is reported, not only the first one json.Unmarshal stops at.
func typeErrors(body []byte, dst any) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return model.Invalid("body", "must be a JSON object")
	}
	target := reflect.TypeOf(dst).Elem()

	verr := &model.ValidationError{}
	for _, key := range slices.Sorted(maps.Keys(members)) {
		one, err := json.Marshal(map[string]json.RawMessage{key: members[key]})
		if err != nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(json.Unmarshal(one, reflect.New(target).Interface()), &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = key
			}
			verr.Fields = append(verr.Fields, model.FieldError{Field: field, Message: "has the wrong type"})
		}
	}
	if len(verr.Fields) == 0 {
		return model.Invalid("body", "has the wrong type")
	}
	return verr
}

func (s *Server) resume(c *gin.Context) {
	if s.ResumePath != "" {
		if info, err := os.Stat(s.ResumePath); err == nil && !info.IsDir() {
			c.FileAttachment(s.ResumePath, path.Base(s.ResumePath))
			return
		}
	}
	if s.ResumeURL != "" {
		c.Redirect(http.StatusFound, s.ResumeURL)
		return
	}
	respondError(c, &model.NotFoundError{Kind: "document", ID: "resume"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	token, id, err := s.Auth.login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
		}
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user": id})
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		s.Auth.logout(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	log.Printf("Admin logout from %s", s.hashIP(c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) currentUser(c *gin.Context) {
	id, ok := s.Auth.identify(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, id)
}

func contentName(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("name"), "/")
}

func (s *Server) readContentFile(c *gin.Context) {
	name := contentName(c)
	text, err := s.Editor.Read(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": text, "filename": name})
}

type writeRequest struct {
	Content *string `json:"content"`
}

func (s *Server) writeContentFile(c *gin.Context) {
	name := contentName(c)
	var req writeRequest
	if err := decodeJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if req.Content == nil {
		respondError(c, model.Invalid("content", "is required"))
		return
	}
	if err := s.Editor.Write(name, *req.Content); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("Content file %s saved by %s", name, operator(c))
	c.JSON(http.StatusOK, gin.H{"message": "File saved successfully", "filename": name})
}

type publishRequest struct {
	Message string `json:"message"`
}

func (s *Server) publish(c *gin.Context) {
	var req publishRequest
	if err := decodeJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := s.Publisher.Publish(c.Request.Context(), req.Message); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("Content published by %s", operator(c))
	c.JSON(http.StatusOK, gin.H{"message": "Changes published successfully"})
}

func (s *Server) uploadURL(c *gin.Context) {
	u, err := s.Objects.UploadURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadURL": u})
}

func (s *Server) receiveUpload(c *gin.Context) {
	id := c.Param("id")
	if err := s.Objects.Verify(id, c.Query("expires"), c.Query("signature")); err != nil {
		respondError(c, err)
		return
	}
	objectPath, err := s.Objects.Put(c.Request.Context(), id, c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": "/objects/" + objectPath})
}

func (s *Server) getObject(c *gin.Context) {
	rc, info, err := s.Objects.Object(c.Request.Context(), strings.TrimPrefix(c.Param("path"), "/"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	contentType := mime.TypeByExtension(path.Ext(info.Path))
	if contentType == "" {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.DataFromReader(http.StatusOK, info.Size, contentType, br, nil)
}

func (s *Server) stats(c *gin.Context) {
	if s.Archive == nil {
		respondError(c, &model.NotFoundError{Kind: "archive", ID: "stats"})
		return
	}
	stats, err := s.Archive.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func operator(c *gin.Context) string {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id.Username
		}
	}
	return "unknown"
}
