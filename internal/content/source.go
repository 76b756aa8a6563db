// Package content serves portfolio records from either the seeded store or
// the content directory.
package content

import (
	"errors"
	"strings"

	"github.com/Zachkp/portfolio/internal/model"
	"github.com/Zachkp/portfolio/internal/normalize"
	"github.com/Zachkp/portfolio/internal/source"
	"github.com/Zachkp/portfolio/internal/store"
)

// Mode selects where records come from.
type Mode string

const (
	ModeSeeded     Mode = "seeded"
	ModeFileBacked Mode = "file-backed"
)

// ParseMode reads the ?source= query value. Empty means seeded.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "seeded", "seed", "memory":
		return ModeSeeded, nil
	case "file-backed", "file", "files", "markdown":
		return ModeFileBacked, nil
	}
	return "", model.Invalid("source", `must be "seeded" or "file-backed"`)
}

// Source is one way of producing the page's records.
type Source interface {
	Projects() ([]model.Project, error)
	Project(id string) (model.Project, error)
	Timeline() ([]model.TimelineItem, error)
	Testimonials() ([]model.Testimonial, error)
	Hero() (model.Hero, error)
	About() (model.About, error)
	Passions() ([]model.Passion, error)
	ContactInfo() (model.ContactInfo, error)
}

// Seeded serves the fixture records held by a store.
type Seeded struct {
	Store  *store.Store
	Blurbs model.Blurbs
}

func (s *Seeded) Projects() ([]model.Project, error) { return s.Store.Projects(), nil }

func (s *Seeded) Project(id string) (model.Project, error) { return s.Store.Project(id) }

func (s *Seeded) Timeline() ([]model.TimelineItem, error) { return s.Store.Timeline(), nil }

func (s *Seeded) Testimonials() ([]model.Testimonial, error) { return s.Store.Testimonials(), nil }

func (s *Seeded) Hero() (model.Hero, error) { return s.Blurbs.Hero, nil }

func (s *Seeded) About() (model.About, error) { return s.Blurbs.About, nil }

func (s *Seeded) ContactInfo() (model.ContactInfo, error) { return s.Blurbs.Contact, nil }

func (s *Seeded) Passions() ([]model.Passion, error) {
	if s.Blurbs.Passions == nil {
		return []model.Passion{}, nil
	}
	return s.Blurbs.Passions, nil
}

// Content file layout below the content root.
const (
	ProjectsDir      = "projects"
	TimelineFile     = "timeline.md"
	TestimonialsFile = "testimonials.md"
	HeroFile         = "hero.md"
	AboutFile        = "about.md"
	PassionsFile     = "passions.md"
	ContactFile      = "contact.md"
)

// FileBacked re-reads and normalizes the content directory on every call.
// It never touches the store.
type FileBacked struct {
	Files *source.Files
}

func (f *FileBacked) Projects() ([]model.Project, error) {
	docs, err := f.Files.LoadDirectory(ProjectsDir)
	if err != nil {
		return nil, err
	}
	return normalize.Projects(docs), nil
}

func (f *FileBacked) Project(id string) (model.Project, error) {
	projects, err := f.Projects()
	if err != nil {
		return model.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, &model.NotFoundError{Kind: "project", ID: id}
}

// Timeline and Testimonials treat a missing list document like an empty
// directory.
func (f *FileBacked) Timeline() ([]model.TimelineItem, error) {
	doc, err := f.optional(TimelineFile)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return []model.TimelineItem{}, nil
	}
	return sortTimeline(normalize.Timeline(*doc)), nil
}

func (f *FileBacked) Testimonials() ([]model.Testimonial, error) {
	doc, err := f.optional(TestimonialsFile)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return []model.Testimonial{}, nil
	}
	return normalize.Testimonials(*doc), nil
}

func (f *FileBacked) Hero() (model.Hero, error) {
	doc, err := f.Files.LoadDocument(HeroFile)
	if err != nil {
		return model.Hero{}, err
	}
	return normalize.Hero(doc), nil
}

func (f *FileBacked) About() (model.About, error) {
	doc, err := f.Files.LoadDocument(AboutFile)
	if err != nil {
		return model.About{}, err
	}
	return normalize.About(doc), nil
}

func (f *FileBacked) Passions() ([]model.Passion, error) {
	doc, err := f.Files.LoadDocument(PassionsFile)
	if err != nil {
		return nil, err
	}
	return normalize.Passions(doc), nil
}

func (f *FileBacked) ContactInfo() (model.ContactInfo, error) {
	doc, err := f.Files.LoadDocument(ContactFile)
	if err != nil {
		return model.ContactInfo{}, err
	}
	return normalize.ContactInfo(doc), nil
}

func (f *FileBacked) optional(name string) (*model.Document, error) {
	doc, err := f.Files.LoadDocument(name)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
