package service

import (
	"context"
	"strings"

	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

type languageLister interface {
	List(ctx context.Context, activeOnly bool) ([]models.Language, error)
}

type keyLister interface {
	List(ctx context.Context, category string) ([]models.TranslationKey, error)
}

// CatalogService exposes the language and key dimensions of the translation matrix.
type CatalogService struct {
	languages languageLister
	keys      keyLister
}

// NewCatalogService constructs the service.
func NewCatalogService(languages languageLister, keys keyLister) *CatalogService {
	return &CatalogService{languages: languages, keys: keys}
}

// Languages lists languages in display order.
func (s *CatalogService) Languages(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	languages, err := s.languages.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list languages")
	}
	if languages == nil {
		languages = []models.Language{}
	}
	return languages, nil
}

// Keys lists translation keys, optionally for one category.
func (s *CatalogService) Keys(ctx context.Context, category string) ([]models.TranslationKey, error) {
	keys, err := s.keys.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list translation keys")
	}
	if keys == nil {
		keys = []models.TranslationKey{}
	}
	return keys, nil
}
