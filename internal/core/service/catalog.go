package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
)

var _ port.CatalogReader = (*CatalogService)(nil)
var _ port.FavoritesKeeper = (*CatalogService)(nil)

// CatalogService serves the immutable product catalog and maintains the
// user-curated favorites set. Favorites are persisted under their own
// record, written synchronously on every change.
type CatalogService struct {
	products   []domain.Product
	categories []domain.Category

	mu        sync.Mutex
	favorites []string
	favRepo   port.FavoritesRepository
}

// NewCatalogService takes the finalized catalog from the provider and
// rehydrates favorites. An unreadable favorites record starts empty.
func NewCatalogService(
	catalog port.CatalogProvider, favRepo port.FavoritesRepository,
) *CatalogService {
	const op = "CatalogService.New"

	s := &CatalogService{
		products:   catalog.Products(),
		categories: catalog.Categories(),
		favRepo:    favRepo,
	}

	favorites, err := favRepo.Load()
	if err != nil {
		slog.Warn("starting with empty favorites", "op", op, "err", err)
		return s
	}
	s.favorites = favorites
	return s
}

func (s *CatalogService) Products() []domain.Product {
	return s.products
}

func (s *CatalogService) Categories() []domain.Category {
	return s.categories
}

// SearchProducts pre-filters by exact category when given, then matches
// the query as a case-insensitive substring against name, description,
// brand and tags. A blank query returns the category-filtered set.
func (s *CatalogService) SearchProducts(query, category string) []domain.Product {
	ps := s.products
	if category != "" {
		ps = s.GetProductsByCategory(category)
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return ps
	}

	var out []domain.Product
	for _, p := range ps {
		if matchesTerm(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func matchesTerm(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func (s *CatalogService) GetProductsByCategory(category string) []domain.Product {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) GetProductByID(id string) (domain.Product, error) {
	const op = "CatalogService.GetProductByID"

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
}

// FilterProducts applies the AND-composed predicates, preserving the
// relative order of the input slice. Unset filter fields pass everything.
func (s *CatalogService) FilterProducts(
	ps []domain.Product, f domain.ProductFilters,
) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if passesFilters(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func passesFilters(p domain.Product, f domain.ProductFilters) bool {
	if f.PriceRange != nil {
		if p.Price.LessThan(f.PriceRange.Min) ||
			p.Price.GreaterThan(f.PriceRange.Max) {
			return false
		}
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.Subcategories) > 0 && !contains(f.Subcategories, p.Subcategory) {
		return false
	}
	if f.InStock && !p.InStock {
		return false
	}
	if f.OnSale && !p.OnSale() {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	return true
}

func contains(vs []string, v string) bool {
	for _, s := range vs {
		if s == v {
			return true
		}
	}
	return false
}

// AddToFavorites appends the product id and writes the record through.
// Adding an id twice is a no-op.
func (s *CatalogService) AddToFavorites(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.favorites, productID) {
		return
	}
	s.favorites = append(s.favorites, productID)
	s.persistFavorites()
}

func (s *CatalogService) RemoveFromFavorites(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.favorites {
		if id == productID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			s.persistFavorites()
			return
		}
	}
}

func (s *CatalogService) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return contains(s.favorites, productID)
}

// Favorites returns the product ids in the order they were added.
func (s *CatalogService) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// persistFavorites writes the full record. Callers must hold s.mu.
func (s *CatalogService) persistFavorites() {
	const op = "CatalogService.persistFavorites"

	if err := s.favRepo.Save(s.favorites); err != nil {
		slog.Error("failed to persist favorites", "op", op, "err", err)
	}
}
