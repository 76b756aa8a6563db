// Package source loads content documents from the content root.
package source

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Zachkp/portfolio/internal/markdown"
	"github.com/Zachkp/portfolio/internal/model"
)

// Ext is the only document extension that is loaded.
const Ext = ".md"

// Files reads documents below Root. Paths passed to its methods are relative
// to Root.
type Files struct {
	Root     string
	Renderer *markdown.Renderer
}

func New(root string, r *markdown.Renderer) *Files {
	if r == nil {
		r = markdown.NewRenderer()
	}
	return &Files{Root: root, Renderer: r}
}

// LoadDocument reads, parses and renders one file. A missing file is a
// *model.NotFoundError and any other read failure is a *model.IOError.
// Malformed front matter does not fail; the document is marked Degraded.
func (f *Files) LoadDocument(rel string) (model.Document, error) {
	path := filepath.Join(f.Root, rel)

	info, err := os.Stat(path)
	if err != nil {
		return model.Document{}, classify("stat", rel, path, err)
	}
	if info.IsDir() {
		return model.Document{}, &model.IOError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, classify("read", rel, path, err)
	}

	meta, body, degraded := markdown.ParseLenient(string(raw))
	if degraded {
		log.Printf("Warning: malformed front matter in %s, treating as plain markdown", path)
	}

	return model.Document{
		Name:         filepath.Base(rel),
		Path:         path,
		ModTime:      info.ModTime(),
		FrontMatter:  meta,
		BodyText:     body,
		BodyRendered: f.Renderer.Render(body),
		Degraded:     degraded,
	}, nil
}

// LoadDirectory loads every document in dir, sorted by filename so that
// positional identifiers are reproducible. A missing or empty directory gives
// an empty result. Entries that vanish, fail to read, or carry malformed
// front matter are skipped.
func (f *Files) LoadDirectory(rel string) ([]model.Document, error) {
	path := filepath.Join(f.Root, rel)

	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Document{}, nil
		}
		return nil, &model.IOError{Op: "list", Path: path, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]model.Document, 0, len(names))
	for _, name := range names {
		doc, err := f.LoadDocument(filepath.Join(rel, name))
		if err != nil {
			log.Printf("Skipping %s: %v", filepath.Join(path, name), err)
			continue
		}
		if doc.Degraded {
			log.Printf("Skipping %s: malformed front matter", doc.Path)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func classify(op, rel, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &model.NotFoundError{Kind: "document", ID: rel}
	}
	return &model.IOError{Op: op, Path: path, Err: err}
}
