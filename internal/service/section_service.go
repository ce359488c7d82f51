package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gala/internal/domain"
	"gala/internal/jsontree"
	"gala/internal/models"
	"gala/internal/repository"
	"gala/internal/schema"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const maxSectionNameLen = 255

// SectionPublisher receives section change notifications.
type SectionPublisher interface {
	PublishSection(event string, s *models.Section)
}

type nopPublisher struct{}

func (nopPublisher) PublishSection(string, *models.Section) {}

// SectionOptions tunes write and editor behaviour.
type SectionOptions struct {
	// RequireVersion rejects writes that carry no expected version.
	RequireVersion bool
	// DefaultLocale is the editor locale when none is requested.
	DefaultLocale string
}

type SectionService struct {
	repo    *repository.SectionRepository
	schemas *schema.Registry
	events  SectionPublisher
	opts    SectionOptions
	log     *zap.Logger
}

func NewSectionService(repo *repository.SectionRepository, schemas *schema.Registry, events SectionPublisher, opts SectionOptions, log *zap.Logger) *SectionService {
	if schemas == nil {
		schemas = schema.Empty()
	}
	if events == nil {
		events = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = domain.DefaultLocale
	}
	return &SectionService{repo: repo, schemas: schemas, events: events, opts: opts, log: log}
}

type CreateSectionInput struct {
	Section string
	Data    json.RawMessage
}

// UpdateSectionInput carries a partial update. Nil Section or empty Data
// leave the stored value unchanged.
type UpdateSectionInput struct {
	Section         *string
	Data            json.RawMessage
	ExpectedVersion *int64
}

func (s *SectionService) List(ctx context.Context) ([]models.Section, error) {
	return s.repo.List(ctx)
}

func (s *SectionService) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	sec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NotFound("Section not found")
		}
		return nil, err
	}
	return sec, nil
}

func (s *SectionService) GetByName(ctx context.Context, name string) (*models.Section, error) {
	sec, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NotFound("Section not found")
		}
		return nil, err
	}
	return sec, nil
}

func (s *SectionService) Create(ctx context.Context, in CreateSectionInput) (*models.Section, error) {
	name, err := validateName(in.Section)
	if err != nil {
		return nil, err
	}
	doc := any(map[string]any{})
	if len(in.Data) > 0 {
		if doc, err = jsontree.Decode(in.Data); err != nil {
			return nil, domain.BadRequest("Section data must be valid JSON")
		}
	}
	data, err := s.validateAndEncode(name, doc)
	if err != nil {
		return nil, err
	}

	sec := &models.Section{Section: name, Data: data}
	if err := s.repo.Create(ctx, sec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateName(name)
		}
		return nil, err
	}
	s.events.PublishSection(domain.EventSectionCreated, sec)
	return sec, nil
}

func (s *SectionService) Update(ctx context.Context, id uint, in UpdateSectionInput) (*models.Section, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expected, err := s.expectedVersion(cur, in.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	var patch repository.SectionPatch
	name := cur.Section
	if in.Section != nil {
		if name, err = validateName(*in.Section); err != nil {
			return nil, err
		}
		if name != cur.Section {
			if _, err := s.repo.GetByName(ctx, name); err == nil {
				return nil, duplicateName(name)
			} else if !repository.IsNotFound(err) {
				return nil, err
			}
			patch.Section = &name
		}
	}

	switch {
	case len(in.Data) > 0:
		doc, err := jsontree.Decode(in.Data)
		if err != nil {
			return nil, domain.BadRequest("Section data must be valid JSON")
		}
		data, err := s.validateAndEncode(name, doc)
		if err != nil {
			return nil, err
		}
		patch.Data = &data
	case patch.Section != nil:
		// the existing document must satisfy the schema of its new name
		doc, err := jsontree.Decode(cur.Data)
		if err != nil {
			return nil, err
		}
		if _, err := s.validateAndEncode(name, doc); err != nil {
			return nil, err
		}
	}

	return s.write(ctx, id, expected, patch)
}

// ApplyEdits applies path-addressed edits to the locale scope of a section's
// data and stores the result under the same version rules as Update.
func (s *SectionService) ApplyEdits(ctx context.Context, id uint, locale string, expectedVersion *int64, edits []jsontree.Edit) (*models.Section, error) {
	if len(edits) == 0 {
		return nil, domain.BadRequest("At least one edit is required")
	}
	if locale != "" && !domain.IsSupportedLocale(locale) {
		return nil, domain.BadRequest(fmt.Sprintf("Unsupported locale '%s'", locale))
	}
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expected, err := s.expectedVersion(cur, expectedVersion)
	if err != nil {
		return nil, err
	}
	doc, err := jsontree.Decode(cur.Data)
	if err != nil {
		return nil, err
	}
	out, err := jsontree.Apply(doc, locale, edits)
	if err != nil {
		return nil, domain.BadRequest(err.Error())
	}
	data, err := s.validateAndEncode(cur.Section, out)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, id, expected, repository.SectionPatch{Data: &data})
}

// SectionForm is the rendered editor for one locale of a section.
type SectionForm struct {
	ID        uint           `json:"id"`
	Section   string         `json:"section"`
	Locale    string         `json:"locale,omitempty"`
	Localized bool           `json:"localized"`
	Version   int64          `json:"version"`
	Form      jsontree.Field `json:"form"`
}

func (s *SectionService) Form(ctx context.Context, id uint, locale string) (*SectionForm, error) {
	if locale != "" && !domain.IsSupportedLocale(locale) {
		return nil, domain.BadRequest(fmt.Sprintf("Unsupported locale '%s'", locale))
	}
	sec, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := jsontree.Decode(sec.Data)
	if err != nil {
		return nil, err
	}
	localized := jsontree.Localized(doc)
	if localized && locale == "" {
		locale = s.opts.DefaultLocale
	}
	if !localized {
		locale = ""
	}
	return &SectionForm{
		ID:        sec.ID,
		Section:   sec.Section,
		Locale:    locale,
		Localized: localized,
		Version:   sec.Version,
		Form:      jsontree.Render(jsontree.Scope(doc, locale)),
	}, nil
}

func (s *SectionService) Delete(ctx context.Context, id uint) error {
	sec, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("Section not found")
	}
	s.events.PublishSection(domain.EventSectionDeleted, sec)
	return nil
}

func (s *SectionService) expectedVersion(cur *models.Section, supplied *int64) (int64, error) {
	if supplied == nil {
		if s.opts.RequireVersion {
			return 0, domain.BadRequest("Section version is required (If-Match header or version field)")
		}
		return cur.Version, nil
	}
	if *supplied != cur.Version {
		return 0, domain.VersionConflict(*supplied, cur.Version)
	}
	return *supplied, nil
}

// write performs the conditional update and tells a lost race apart from a
// concurrent delete.
func (s *SectionService) write(ctx context.Context, id uint, expected int64, patch repository.SectionPatch) (*models.Section, error) {
	n, err := s.repo.UpdateVersioned(ctx, id, expected, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) && patch.Section != nil {
			return nil, duplicateName(*patch.Section)
		}
		return nil, err
	}
	latest, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		s.log.Debug("section write lost version race",
			zap.Uint("id", id), zap.Int64("expected", expected), zap.Int64("current", latest.Version))
		return nil, domain.VersionConflict(expected, latest.Version)
	}
	s.events.PublishSection(domain.EventSectionUpdated, latest)
	return latest, nil
}

func (s *SectionService) validateAndEncode(name string, doc any) (datatypes.JSON, error) {
	if errs := s.schemas.Validate(name, doc); len(errs) > 0 {
		return nil, domain.Invalid(fmt.Sprintf("Section '%s' data does not match its schema", name), errs)
	}
	b, err := jsontree.Encode(doc)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.BadRequest("Section name is required")
	}
	if len(name) > maxSectionNameLen {
		return "", domain.BadRequest(fmt.Sprintf("Section name must be at most %d characters", maxSectionNameLen))
	}
	return name, nil
}

func duplicateName(name string) error {
	return domain.Conflict(fmt.Sprintf("Section with name '%s' already exists", name))
}
