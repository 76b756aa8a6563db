package content

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Zachkp/portfolio/internal/model"
	"github.com/Zachkp/portfolio/internal/source"
	"github.com/Zachkp/portfolio/internal/store"
)

// Service is the read/write contract the HTTP layer talks to. Each call is
// answered by exactly one Source.
type Service struct {
	store    *store.Store
	sources  map[Mode]Source
	validate *validator.Validate
}

// NewService wires the seeded and file-backed sources.
func NewService(st *store.Store, blurbs model.Blurbs, files *source.Files) *Service {
	s := &Service{
		store:    st,
		sources:  map[Mode]Source{},
		validate: newValidator(),
	}
	s.Register(ModeSeeded, &Seeded{Store: st, Blurbs: blurbs})
	s.Register(ModeFileBacked, &FileBacked{Files: files})
	return s
}

// Register adds or replaces the source behind mode.
func (s *Service) Register(mode Mode, src Source) {
	s.sources[mode] = src
}

func (s *Service) Source(mode Mode) (Source, error) {
	src, ok := s.sources[mode]
	if !ok {
		return nil, model.Invalid("source", fmt.Sprintf("unknown source %q", mode))
	}
	return src, nil
}

func (s *Service) Projects(mode Mode) ([]model.Project, error) {
	src, err := s.Source(mode)
	if err != nil {
		return nil, err
	}
	return src.Projects()
}

func (s *Service) Project(mode Mode, id string) (model.Project, error) {
	src, err := s.Source(mode)
	if err != nil {
		return model.Project{}, err
	}
	return src.Project(id)
}

func (s *Service) Timeline(mode Mode) ([]model.TimelineItem, error) {
	src, err := s.Source(mode)
	if err != nil {
		return nil, err
	}
	return src.Timeline()
}

func (s *Service) Testimonials(mode Mode) ([]model.Testimonial, error) {
	src, err := s.Source(mode)
	if err != nil {
		return nil, err
	}
	return src.Testimonials()
}

func (s *Service) Hero(mode Mode) (model.Hero, error) {
	src, err := s.Source(mode)
	if err != nil {
		return model.Hero{}, err
	}
	return src.Hero()
}

func (s *Service) About(mode Mode) (model.About, error) {
	src, err := s.Source(mode)
	if err != nil {
		return model.About{}, err
	}
	return src.About()
}

func (s *Service) Passions(mode Mode) ([]model.Passion, error) {
	src, err := s.Source(mode)
	if err != nil {
		return nil, err
	}
	return src.Passions()
}

func (s *Service) ContactInfo(mode Mode) (model.ContactInfo, error) {
	src, err := s.Source(mode)
	if err != nil {
		return model.ContactInfo{}, err
	}
	return src.ContactInfo()
}

// SubmitContact validates in and stores it. Invalid input returns a
// *model.ValidationError naming every offending field.
func (s *Service) SubmitContact(in model.ContactInput) (model.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if in.ProjectType != nil {
		pt := strings.TrimSpace(*in.ProjectType)
		in.ProjectType = model.StringPtr(pt)
	}

	if err := s.validate.Struct(in); err != nil {
		return model.Contact{}, toValidationError(err)
	}
	return s.store.CreateContact(in), nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &model.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, model.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}

func sortTimeline(items []model.TimelineItem) []model.TimelineItem {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items
}
