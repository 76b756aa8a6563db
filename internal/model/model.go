// Package model holds the records served by the portfolio API.
package model

import "time"

// Status is the board column a project sits in.
type Status string

const (
	StatusIdeas      Status = "ideas"
	StatusInProgress Status = "in-progress"
	StatusLaunched   Status = "launched"
)

// Valid reports whether s is one of the three canonical values.
func (s Status) Valid() bool {
	switch s {
	case StatusIdeas, StatusInProgress, StatusLaunched:
		return true
	}
	return false
}

type Project struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	FullDescription string            `json:"fullDescription"`
	Status          Status            `json:"status"`
	Progress        int               `json:"progress"`
	Technologies    []string          `json:"technologies"`
	ImageURL        *string           `json:"imageUrl"`
	LiveURL         *string           `json:"liveUrl"`
	GithubURL       *string           `json:"githubUrl"`
	Features        []string          `json:"features"`
	Impact          map[string]string `json:"impact"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type TimelineItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Period      string    `json:"period"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Company   *string   `json:"company"`
	Quote     string    `json:"quote"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact is a stored contact-form submission.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ProjectType *string   `json:"projectType"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContactInput is the unvalidated shape of a contact-form submission.
type ContactInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	ProjectType *string `json:"projectType" validate:"omitempty,max=64"`
	Message     string  `json:"message" validate:"required,max=5000"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
}

type About struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	ImageURL   *string  `json:"imageUrl"`
	Highlights []string `json:"highlights"`
}

type Passion struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContactInfo struct {
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Email        string            `json:"email"`
	Location     string            `json:"location"`
	Socials      map[string]string `json:"socials"`
	ProjectTypes []string          `json:"projectTypes"`
}

// Blurbs groups the single-document sections of the page.
type Blurbs struct {
	Hero     Hero
	About    About
	Passions []Passion
	Contact  ContactInfo
}

// Document is a parsed content file. It is transient: normalizers consume it
// and nothing retains it.
type Document struct {
	Name         string
	Path         string
	ModTime      time.Time
	FrontMatter  map[string]any
	BodyText     string
	BodyRendered string
	// Degraded is set when the front matter was malformed and the whole
	// file was taken as body.
	Degraded bool
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
