// Package store is the in-memory record store behind the seeded content
// source and the contact form.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/model"
)

// Seed is the data a Store starts with.
type Seed struct {
	Projects     []model.Project
	Timeline     []model.TimelineItem
	Testimonials []model.Testimonial
}

// collection keeps records by id and remembers insertion order.
type collection[T any] struct {
	byID  map[string]T
	order []string
}

func newCollection[T any]() collection[T] {
	return collection[T]{byID: map[string]T{}}
}

func (c *collection[T]) put(id string, v T) {
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Store holds projects, timeline items, testimonials and contacts. All
// methods are safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	projects     collection[model.Project]
	timeline     collection[model.TimelineItem]
	testimonials collection[model.Testimonial]
	contacts     collection[model.Contact]

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		projects:     newCollection[model.Project](),
		timeline:     newCollection[model.TimelineItem](),
		testimonials: newCollection[model.Testimonial](),
		contacts:     newCollection[model.Contact](),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	for _, p := range seed.Projects {
		s.projects.put(p.ID, p)
	}
	for _, t := range seed.Timeline {
		s.timeline.put(t.ID, t)
	}
	for _, t := range seed.Testimonials {
		s.testimonials.put(t.ID, t)
	}
	return s
}

// freshID returns an id not yet used in byID. Caller holds the write lock.
func freshID[T any](s *Store, c *collection[T]) string {
	for {
		id := s.newID()
		if _, taken := c.byID[id]; !taken {
			return id
		}
	}
}

func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.list()
}

func (s *Store) Project(id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects.byID[id]
	if !ok {
		return model.Project{}, &model.NotFoundError{Kind: "project", ID: id}
	}
	return p, nil
}

// CreateProject stores p under a new id. Any id or createdAt on p is replaced.
func (s *Store) CreateProject(p model.Project) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = freshID(s, &s.projects)
	p.CreatedAt = s.now()
	s.projects.put(p.ID, p)
	return p
}

// Timeline lists items by ascending order; equal orders keep insertion order.
func (s *Store) Timeline() []model.TimelineItem {
	s.mu.RLock()
	items := s.timeline.list()
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items
}

func (s *Store) CreateTimelineItem(t model.TimelineItem) model.TimelineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = freshID(s, &s.timeline)
	t.CreatedAt = s.now()
	s.timeline.put(t.ID, t)
	return t
}

func (s *Store) Testimonials() []model.Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.testimonials.list()
}

func (s *Store) CreateTestimonial(t model.Testimonial) model.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = freshID(s, &s.testimonials)
	t.CreatedAt = s.now()
	s.testimonials.put(t.ID, t)
	return t
}

// CreateContact records a validated submission.
func (s *Store) CreateContact(in model.ContactInput) model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Contact{
		ID:          freshID(s, &s.contacts),
		Name:        in.Name,
		Email:       in.Email,
		ProjectType: in.ProjectType,
		Message:     in.Message,
		CreatedAt:   s.now(),
	}
	s.contacts.put(c.ID, c)
	return c
}

func (s *Store) Contacts() []model.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contacts.list()
}
