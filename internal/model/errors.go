package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError reports a malformed front-matter block.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parse front matter: " + e.Err.Error()
	}
	return fmt.Sprintf("parse front matter in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// IOError is a filesystem failure other than a missing file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UpstreamError is an opaque failure of an external collaborator
// (object storage, publish remote).
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }
