package service

import (
	"context"
	"fmt"

	"github.com/spiritually/spiritually/internal/domain"
)

// KnowledgeService exposes read access to the three tradition
// collections. All type dispatch goes through domain.Collections.
type KnowledgeService struct {
	repos map[domain.Kind]domain.TraditionRepository
}

// NewKnowledgeService creates a KnowledgeService over one repository per
// tradition kind.
func NewKnowledgeService(repos map[domain.Kind]domain.TraditionRepository) *KnowledgeService {
	return &KnowledgeService{repos: repos}
}

// Catalog holds one result set per collection, keyed by the collection's
// response key (philosophies, religions, astrologicalSystems).
type Catalog map[string][]domain.Tradition

// ListAll returns the full contents of all three collections.
func (s *KnowledgeService) ListAll(ctx context.Context) (Catalog, error) {
	catalog := Catalog{}
	for _, c := range domain.Collections {
		traditions, err := s.repos[c.Kind].List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.Tag, err)
		}
		catalog[c.Key] = traditions
	}
	return catalog, nil
}

// ListByTag returns the full collection for a URL tag. Unknown tags fail
// with ErrInvalidType.
func (s *KnowledgeService) ListByTag(ctx context.Context, tag string) ([]domain.Tradition, error) {
	c, ok := domain.CollectionForTag(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidType, tag)
	}
	return s.repos[c.Kind].List(ctx)
}

// GetByID resolves one record by collection tag and id. Unknown tags fail
// with ErrInvalidType, unknown ids with ErrNotFound.
func (s *KnowledgeService) GetByID(ctx context.Context, tag, id string) (*domain.Tradition, error) {
	c, ok := domain.CollectionForTag(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidType, tag)
	}
	return s.repos[c.Kind].GetByID(ctx, id)
}

// Search runs the same text query independently against all three
// collections. An empty or unmatched query yields empty result sets,
// never an error.
func (s *KnowledgeService) Search(ctx context.Context, query string) (Catalog, error) {
	catalog := Catalog{}
	for _, c := range domain.Collections {
		traditions, err := s.repos[c.Kind].Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", c.Tag, err)
		}
		catalog[c.Key] = traditions
	}
	return catalog, nil
}

// EnhancedListByTag is ListByTag with every record decorated with derived
// enhanced content. The decoration is never persisted.
func (s *KnowledgeService) EnhancedListByTag(ctx context.Context, tag string) ([]domain.Tradition, error) {
	traditions, err := s.ListByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return decorateAll(traditions), nil
}

// EnhancedSearch is Search with every record decorated.
func (s *KnowledgeService) EnhancedSearch(ctx context.Context, query string) (Catalog, error) {
	catalog, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	for key, traditions := range catalog {
		catalog[key] = decorateAll(traditions)
	}
	return catalog, nil
}

func decorateAll(traditions []domain.Tradition) []domain.Tradition {
	decorated := make([]domain.Tradition, len(traditions))
	for i, t := range traditions {
		decorated[i] = Decorate(t)
	}
	return decorated
}
