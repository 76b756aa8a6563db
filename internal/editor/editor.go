// Package editor reads and writes raw content files for the operator.
package editor

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zachkp/portfolio/internal/model"
)

// Files edits files below Root.
type Files struct {
	Root string
}

func New(root string) *Files {
	return &Files{Root: root}
}

// resolve maps a client-supplied name onto a path inside Root, rejecting
// absolute names and anything that climbs out of it.
func (f *Files) resolve(name string) (string, error) {
	name = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(name)), "/")
	if name == "" {
		return "", model.Invalid("filename", "is required")
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", model.Invalid("filename", "must stay inside the content directory")
	}
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return "", model.Invalid("filename", "hidden paths are not editable")
		}
	}
	return filepath.Join(f.Root, clean), nil
}

// Read returns the file's text exactly as stored.
func (f *Files) Read(name string) (string, error) {
	path, err := f.resolve(name)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &model.NotFoundError{Kind: "content file", ID: name}
		}
		return "", &model.IOError{Op: "read", Path: path, Err: err}
	}
	return string(raw), nil
}

// Write replaces the file with text, creating parent directories. The new
// content is written to a temporary file and renamed into place, so readers
// see either the old or the new file and never a partial one. Concurrent
// writers race and the last rename wins.
func (f *Files) Write(name, text string) error {
	path, err := f.resolve(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &model.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".edit-*")
	if err != nil {
		return &model.IOError{Op: "create", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &model.IOError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &model.IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &model.IOError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &model.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
