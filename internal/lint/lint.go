// Package lint reports content that loads but silently falls back to a
// default: unknown status labels, out-of-range progress, malformed front
// matter and the like.
package lint

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/model"
	"github.com/Zachkp/portfolio/internal/normalize"
	"github.com/Zachkp/portfolio/internal/source"
)

type Issue struct {
	File    string
	Message string
}

func (i Issue) String() string { return i.File + ": " + i.Message }

type Report struct {
	Checked int
	Issues  []Issue
}

func (r Report) OK() bool { return len(r.Issues) == 0 }

// Print writes one line per issue followed by a summary.
func (r Report) Print(w io.Writer) {
	for _, i := range r.Issues {
		fmt.Fprintln(w, i)
	}
	fmt.Fprintf(w, "%d files checked, %d issues\n", r.Checked, len(r.Issues))
}

type Checker struct {
	Files *source.Files
}

func New(files *source.Files) *Checker {
	return &Checker{Files: files}
}

// Check inspects the whole content root.
func (c *Checker) Check() (Report, error) {
	var r Report

	names, err := c.projectFiles()
	if err != nil {
		return r, err
	}
	for _, name := range names {
		if err := c.checkProject(&r, filepath.Join(content.ProjectsDir, name)); err != nil {
			return r, err
		}
	}

	if err := c.checkProjectIDs(&r); err != nil {
		return r, err
	}

	if err := c.checkList(&r, content.TimelineFile, "items"); err != nil {
		return r, err
	}
	if err := c.checkList(&r, content.TestimonialsFile, "testimonials"); err != nil {
		return r, err
	}

	for _, name := range []string{content.HeroFile, content.AboutFile, content.PassionsFile, content.ContactFile} {
		doc, err := c.load(&r, name)
		if err != nil {
			return r, err
		}
		if doc == nil {
			r.add(name, "missing; the file-backed endpoint answers 404")
		}
	}

	sort.SliceStable(r.Issues, func(i, j int) bool { return r.Issues[i].File < r.Issues[j].File })
	return r, nil
}

func (r *Report) add(file, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{File: file, Message: fmt.Sprintf(format, args...)})
}

func (c *Checker) projectFiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(c.Files.Root, content.ProjectsDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), source.Ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// load returns nil for a missing file. Degraded documents are reported here.
func (c *Checker) load(r *Report, rel string) (*model.Document, error) {
	doc, err := c.Files.LoadDocument(rel)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Checked++
	if doc.Degraded {
		r.add(rel, "malformed front matter")
	}
	return &doc, nil
}

func (c *Checker) checkProject(r *Report, rel string) error {
	doc, err := c.load(r, rel)
	if err != nil || doc == nil {
		return err
	}
	if doc.Degraded {
		r.add(rel, "project is skipped by the file-backed source")
		return nil
	}
	fm := doc.FrontMatter

	if raw, ok := fm["status"]; !ok || raw == nil {
		r.add(rel, "no status; shown under %q", model.StatusIdeas)
	} else if _, ok := normalize.ParseStatus(raw); !ok {
		r.add(rel, "unrecognized status %q; shown under %q (accepted: %s)",
			fmt.Sprint(raw), model.StatusIdeas, strings.Join(normalize.StatusLabels(), ", "))
	}

	if n, present, numeric := normalize.RawProgress(fm); present {
		switch {
		case !numeric:
			r.add(rel, "progress %q is not a number; using 0", fmt.Sprint(fm["progress"]))
		case n < 0 || n > 100:
			r.add(rel, "progress %d out of range; clamped to 0-100", n)
		}
	}

	if t, _ := fm["title"].(string); strings.TrimSpace(t) == "" {
		r.add(rel, "no title; derived from filename")
	}
	return nil
}

func (c *Checker) checkList(r *Report, rel, key string) error {
	doc, err := c.load(r, rel)
	if err != nil || doc == nil || doc.Degraded {
		return err
	}
	raw, ok := doc.FrontMatter[key]
	if !ok {
		r.add(rel, "no %q list; endpoint returns an empty list", key)
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		r.add(rel, "%q is not a list", key)
		return nil
	}
	seen := map[string]bool{}
	pos := 0
	for i, it := range items {
		el, ok := it.(map[string]any)
		if !ok {
			r.add(rel, "%s[%d] is not a mapping; dropped", key, i)
			continue
		}
		id := normalize.ItemID(el, pos)
		pos++
		if seen[id] {
			r.add(rel, "%s[%d] repeats id %q; served under a suffixed id", key, i, id)
			continue
		}
		seen[id] = true
	}
	return nil
}

// checkProjectIDs reports projects whose id, explicit or positional, is
// already held by an earlier file in the listing.
func (c *Checker) checkProjectIDs(r *Report) error {
	docs, err := c.Files.LoadDirectory(content.ProjectsDir)
	if err != nil {
		return err
	}
	first := map[string]string{}
	for i, d := range docs {
		rel := filepath.Join(content.ProjectsDir, d.Name)
		id := normalize.ProjectIDOf(d, i)
		if prev, ok := first[id]; ok {
			r.add(rel, "id %q is already used by %s; served under a suffixed id", id, prev)
			continue
		}
		first[id] = rel
	}
	return nil
}
