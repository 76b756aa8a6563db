package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/model"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestDefaultSeed(t *testing.T) {
	s := New(DefaultSeed(fixedNow))

	projects := s.Projects()
	require.Len(t, projects, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{projects[0].ID, projects[1].ID, projects[2].ID})

	var launched int
	for _, p := range projects {
		assert.True(t, p.Status.Valid())
		if p.Status == model.StatusLaunched {
			launched++
			assert.Equal(t, 100, p.Progress)
		}
	}
	assert.Equal(t, 1, launched)

	assert.Len(t, s.Timeline(), 3)
	assert.Len(t, s.Testimonials(), 3)
	assert.Empty(t, s.Contacts())
}

func TestProject_GetAndNotFound(t *testing.T) {
	s := New(DefaultSeed(fixedNow))

	p, err := s.Project("3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusLaunched, p.Status)

	_, err = s.Project("nope")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestTimeline_SortedByOrderStable(t *testing.T) {
	s := New(Seed{Timeline: []model.TimelineItem{
		{ID: "a", Order: 3},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
		{ID: "d", Order: 1},
	}})

	var ids []string
	for _, it := range s.Timeline() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
}

func TestCreate_AssignsIDAndTime(t *testing.T) {
	s := New(Seed{}, WithClock(func() time.Time { return fixedNow }))

	p := s.CreateProject(model.Project{ID: "ignored", Title: "New"})
	assert.NotEqual(t, "ignored", p.ID)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)

	got, err := s.Project(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	c := s.CreateContact(model.ContactInput{Name: "A", Email: "a@b.com", Message: "hi"})
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Equal(t, []model.Contact{c}, s.Contacts())

	item := s.CreateTimelineItem(model.TimelineItem{Title: "T", Order: 4})
	assert.NotEmpty(t, item.ID)
	tm := s.CreateTestimonial(model.Testimonial{Name: "N"})
	assert.NotEmpty(t, tm.ID)
}

func TestCreate_RedrawsCollidingID(t *testing.T) {
	ids := []string{"1", "2", "fresh"}
	var i int
	s := New(DefaultSeed(fixedNow), WithIDs(func() string {
		id := ids[i]
		i++
		return id
	}))

	p := s.CreateProject(model.Project{Title: "x"})
	// "1" and "2" are fixture ids.
	assert.Equal(t, "fresh", p.ID)
	assert.Equal(t, 3, i)
}

func TestCreateContact_Concurrent(t *testing.T) {
	s := New(Seed{})

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.CreateContact(model.ContactInput{Name: fmt.Sprint(i), Email: "a@b.com", Message: "hi"})
		}(i)
	}
	wg.Wait()

	contacts := s.Contacts()
	require.Len(t, contacts, n)
	seen := map[string]bool{}
	for _, c := range contacts {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}
