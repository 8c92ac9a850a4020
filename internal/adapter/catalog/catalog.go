// Package catalog loads the static product catalog the storefront is
// browsed from. The catalog is finalized at startup and never changes
// for the lifetime of the process.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogProvider = (*Provider)(nil)

//go:embed seed.json
var seedData []byte

type (
	catalogFile struct {
		Products   []productRecord  `json:"products"`
		Categories []categoryRecord `json:"categories"`
	}

	productRecord struct {
		ID            string           `json:"id"`
		Name          string           `json:"name"`
		Description   string           `json:"description"`
		Price         decimal.Decimal  `json:"price"`
		OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
		Discount      int              `json:"discount,omitempty"`
		Image         string           `json:"image"`
		Category      string           `json:"category"`
		Subcategory   string           `json:"subcategory,omitempty"`
		Brand         string           `json:"brand"`
		Unit          string           `json:"unit"`
		Weight        string           `json:"weight,omitempty"`
		InStock       bool             `json:"in_stock"`
		StockQuantity int              `json:"stock_quantity"`
		Rating        float64          `json:"rating"`
		ReviewCount   int              `json:"review_count"`
		Tags          []string         `json:"tags"`
	}

	categoryRecord struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Slug          string   `json:"slug"`
		Description   string   `json:"description"`
		Image         string   `json:"image"`
		Subcategories []string `json:"subcategories"`
	}
)

// Provider holds the finalized catalog slices.
type Provider struct {
	products   []domain.Product
	categories []domain.Category
}

// Load reads the catalog from path, or from the embedded seed catalog
// when path is empty. A malformed catalog fails loud: the storefront has
// nothing to sell without it.
func Load(path string) (Provider, error) {
	const op = "catalog.Load"
	log := slog.With("op", op)

	data := seedData
	src := "embedded seed"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Provider{}, fmt.Errorf("%s: %w", op, err)
		}
		data = b
		src = path
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Provider{}, fmt.Errorf("%s: failed to parse catalog: %w", op, err)
	}

	p := Provider{
		products:   make([]domain.Product, 0, len(f.Products)),
		categories: make([]domain.Category, 0, len(f.Categories)),
	}

	seen := make(map[string]struct{}, len(f.Products))
	for _, v := range f.Products {
		if err := validateProduct(v); err != nil {
			return Provider{}, fmt.Errorf("%s: product %q: %w", op, v.ID, err)
		}
		if _, dup := seen[v.ID]; dup {
			return Provider{}, fmt.Errorf("%s: duplicate product id %q", op, v.ID)
		}
		seen[v.ID] = struct{}{}
		p.products = append(p.products, v.toDomain())
	}

	for _, v := range f.Categories {
		p.categories = append(p.categories, domain.Category(v))
	}

	log.Info("catalog loaded",
		"source", src,
		"products", len(p.products), "categories", len(p.categories),
	)
	return p, nil
}

func (p Provider) Products() []domain.Product {
	return p.products
}

func (p Provider) Categories() []domain.Category {
	return p.categories
}

func validateProduct(v productRecord) error {
	switch {
	case v.ID == "" || v.Name == "":
		return fmt.Errorf("missing id or name")
	case v.Price.IsNegative():
		return fmt.Errorf("negative price")
	case v.OriginalPrice != nil && v.OriginalPrice.LessThan(v.Price):
		return fmt.Errorf("original price below price")
	case v.StockQuantity < 0:
		return fmt.Errorf("negative stock quantity")
	case v.Rating < 0 || v.Rating > 5:
		return fmt.Errorf("rating out of range")
	case v.ReviewCount < 0:
		return fmt.Errorf("negative review count")
	}
	return nil
}

func (v productRecord) toDomain() domain.Product {
	p := domain.Product{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		Price:         v.Price,
		Discount:      v.Discount,
		Image:         v.Image,
		Category:      v.Category,
		Subcategory:   v.Subcategory,
		Brand:         v.Brand,
		Unit:          v.Unit,
		Weight:        v.Weight,
		InStock:       v.InStock,
		StockQuantity: v.StockQuantity,
		Rating:        v.Rating,
		ReviewCount:   v.ReviewCount,
		Tags:          v.Tags,
	}
	if v.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(*v.OriginalPrice)
	}
	return p
}
