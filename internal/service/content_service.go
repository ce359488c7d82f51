package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gala/internal/content"
	"gala/internal/domain"
	"gala/internal/jsontree"
	"gala/internal/repository"
)

// ContentService serves section content resolved for one locale.
type ContentService struct {
	repo          *repository.SectionRepository
	defaultLocale string
}

// NewContentService falls back to defaultLocale when a request names no
// language or the document lacks the requested one. An empty value means
// domain.DefaultLocale.
func NewContentService(repo *repository.SectionRepository, defaultLocale string) *ContentService {
	if defaultLocale == "" {
		defaultLocale = domain.DefaultLocale
	}
	return &ContentService{repo: repo, defaultLocale: defaultLocale}
}

type ResolvedContent struct {
	Section   string    `json:"section"`
	Locale    string    `json:"locale"`
	Content   any       `json:"content"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ContentService) Get(ctx context.Context, name, lang string) (*ResolvedContent, error) {
	lang, err := s.normalizeLang(lang)
	if err != nil {
		return nil, err
	}
	sec, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NotFound("Section not found")
		}
		return nil, err
	}
	doc, err := jsontree.Decode(sec.Data)
	if err != nil {
		return nil, err
	}
	c, loc := content.Resolve(doc, lang, s.defaultLocale)
	return &ResolvedContent{Section: sec.Section, Locale: loc, Content: c, Version: sec.Version, UpdatedAt: sec.UpdatedAt}, nil
}

// GetMany resolves several sections at once; unknown names are omitted.
func (s *ContentService) GetMany(ctx context.Context, names []string, lang string) (map[string]ResolvedContent, error) {
	lang, err := s.normalizeLang(lang)
	if err != nil {
		return nil, err
	}
	var clean []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return nil, domain.BadRequest("At least one section name is required")
	}
	list, err := s.repo.GetByNames(ctx, clean)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ResolvedContent, len(list))
	for _, sec := range list {
		doc, err := jsontree.Decode(sec.Data)
		if err != nil {
			return nil, err
		}
		c, loc := content.Resolve(doc, lang, s.defaultLocale)
		out[sec.Section] = ResolvedContent{Section: sec.Section, Locale: loc, Content: c, Version: sec.Version, UpdatedAt: sec.UpdatedAt}
	}
	return out, nil
}

func (s *ContentService) normalizeLang(lang string) (string, error) {
	l, ok := content.NormalizeLang(strings.ToLower(strings.TrimSpace(lang)), s.defaultLocale)
	if !ok {
		return "", domain.BadRequest(fmt.Sprintf("Unsupported language '%s'", lang))
	}
	return l, nil
}
