// Package normalize maps raw front matter onto the fixed record schema.
// Every function here is pure and returns a fully defaulted record: no field
// is left nil unless the schema marks it optional.
package normalize

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zachkp/portfolio/internal/model"
)

// ImpactKey is the synthetic key used when impact is given as a single string.
const ImpactKey = "impact"

// ProjectID is the identifier given to the project at position index (0-based)
// of a directory listing when its front matter carries no id.
func ProjectID(index int) string {
	return fmt.Sprintf("project-%d", index+1)
}

// ProjectIDOf is the id doc declares, or its positional id. Projects may
// still rename it to keep a listing free of repeats.
func ProjectIDOf(doc model.Document, index int) string {
	if id := str(doc.FrontMatter, "id"); id != "" {
		return id
	}
	return ProjectID(index)
}

// Project builds a project from a document in a sorted directory listing.
func Project(doc model.Document, index int) model.Project {
	fm := doc.FrontMatter
	if fm == nil {
		fm = map[string]any{}
	}

	id := ProjectIDOf(doc, index)

	title := str(fm, "title")
	if title == "" {
		title = titleFromName(doc.Name)
	}

	status, ok := ParseStatus(fm["status"])
	if !ok && fm["status"] != nil {
		log.Printf("Warning: %s: unrecognized status %q, using %q", doc.Name, fmt.Sprint(fm["status"]), status)
	}

	progress, _ := integer(fm, "progress")

	full := strings.TrimSpace(doc.BodyRendered)
	if strings.TrimSpace(doc.BodyText) == "" {
		full = str(fm, "fullDescription", "full_description")
	}

	created, ok := timestamp(fm, "createdAt", "date")
	if !ok {
		created = doc.ModTime
	}

	return model.Project{
		ID:              id,
		Title:           title,
		Description:     str(fm, "description", "summary"),
		FullDescription: full,
		Status:          status,
		Progress:        clamp(progress, 0, 100),
		Technologies:    strList(fm, "technologies"),
		ImageURL:        model.StringPtr(str(fm, "imageUrl", "image")),
		LiveURL:         model.StringPtr(str(fm, "liveUrl")),
		GithubURL:       model.StringPtr(str(fm, "githubUrl", "github")),
		Features:        strList(fm, "features"),
		Impact:          impact(fm["impact"]),
		CreatedAt:       created,
	}
}

// Projects normalizes a sorted directory listing.
func Projects(docs []model.Document) []model.Project {
	out := make([]model.Project, 0, len(docs))
	for i, d := range docs {
		out = append(out, Project(d, i))
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	for i, id := range UniqueIDs("project", ids) {
		out[i].ID = id
	}
	return out
}

func impact(v any) map[string]string {
	switch t := v.(type) {
	case nil:
		return map[string]string{}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return map[string]string{ImpactKey: s}
		}
		return map[string]string{}
	}
	return stringMap(v)
}

// Timeline reads the items list of a timeline document. Elements without an
// id or order take their 1-based position for both.
func Timeline(doc model.Document) []model.TimelineItem {
	items := list(doc.FrontMatter, "items")
	out := make([]model.TimelineItem, 0, len(items))
	for i, el := range items {
		id := ItemID(el, i)
		order, ok := integer(el, "order")
		if !ok {
			order = i + 1
		}
		created, ok := timestamp(el, "createdAt", "date")
		if !ok {
			created = doc.ModTime
		}
		out = append(out, model.TimelineItem{
			ID:          id,
			Title:       str(el, "title"),
			Company:     str(el, "company"),
			Period:      str(el, "period"),
			Description: str(el, "description"),
			Skills:      strList(el, "skills"),
			Order:       order,
			CreatedAt:   created,
		})
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	for i, id := range UniqueIDs("timeline", ids) {
		out[i].ID = id
	}
	return out
}

// Testimonials reads the testimonials list of a testimonials document.
func Testimonials(doc model.Document) []model.Testimonial {
	items := list(doc.FrontMatter, "testimonials")
	out := make([]model.Testimonial, 0, len(items))
	for i, el := range items {
		id := ItemID(el, i)
		created, ok := timestamp(el, "createdAt", "date")
		if !ok {
			created = doc.ModTime
		}
		out = append(out, model.Testimonial{
			ID:        id,
			Name:      str(el, "name"),
			Role:      str(el, "role"),
			Company:   model.StringPtr(str(el, "company")),
			Quote:     str(el, "quote"),
			ImageURL:  model.StringPtr(str(el, "imageUrl", "image")),
			CreatedAt: created,
		})
	}
	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	for i, id := range UniqueIDs("testimonial", ids) {
		out[i].ID = id
	}
	return out
}

func Hero(doc model.Document) model.Hero {
	fm := doc.FrontMatter
	return model.Hero{
		Title:    str(fm, "title"),
		Subtitle: str(fm, "subtitle"),
		Body:     strings.TrimSpace(doc.BodyRendered),
		CTAText:  str(fm, "ctaText", "cta"),
		CTALink:  str(fm, "ctaLink"),
	}
}

func About(doc model.Document) model.About {
	fm := doc.FrontMatter
	return model.About{
		Title:      str(fm, "title"),
		Body:       strings.TrimSpace(doc.BodyRendered),
		ImageURL:   model.StringPtr(str(fm, "imageUrl", "image")),
		Highlights: strList(fm, "highlights"),
	}
}

func Passions(doc model.Document) []model.Passion {
	items := list(doc.FrontMatter, "passions")
	out := make([]model.Passion, 0, len(items))
	for _, el := range items {
		out = append(out, model.Passion{
			Icon:        str(el, "icon"),
			Title:       str(el, "title"),
			Description: str(el, "description"),
		})
	}
	return out
}

func ContactInfo(doc model.Document) model.ContactInfo {
	fm := doc.FrontMatter
	return model.ContactInfo{
		Title:        str(fm, "title"),
		Body:         strings.TrimSpace(doc.BodyRendered),
		Email:        str(fm, "email"),
		Location:     str(fm, "location"),
		Socials:      stringMap(fm["socials"]),
		ProjectTypes: strList(fm, "projectTypes"),
	}
}

// ItemID is the id of the list element at position index (0-based): its
// explicit id, or its 1-based position.
func ItemID(el map[string]any, index int) string {
	if id := str(el, "id"); id != "" {
		return id
	}
	return strconv.Itoa(index + 1)
}

// UniqueIDs returns ids with repeats renamed so that every id in a
// collection is distinct. The first holder keeps an id; later holders get
// "-2", "-3", ... appended, skipping any suffix already in use.
func UniqueIDs(kind string, ids []string) []string {
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		taken[id] = true
	}
	kept := make(map[string]bool, len(ids))
	out := make([]string, len(ids))
	for i, id := range ids {
		if !kept[id] {
			kept[id] = true
			out[i] = id
			continue
		}
		n := 2
		alt := fmt.Sprintf("%s-%d", id, n)
		for taken[alt] {
			n++
			alt = fmt.Sprintf("%s-%d", id, n)
		}
		taken[alt] = true
		kept[alt] = true
		log.Printf("Warning: duplicate %s id %q, serving as %q", kind, id, alt)
		out[i] = alt
	}
	return out
}

// titleFromName turns "task-flow_dashboard.md" into "Task Flow Dashboard".
func titleFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	// Casers carry state and are not shared between goroutines.
	return cases.Title(language.English).String(strings.TrimSpace(stem))
}
