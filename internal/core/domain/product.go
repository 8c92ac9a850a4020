package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type (
	Product struct {
		ID            string
		Name          string
		Description   string
		Price         decimal.Decimal
		OriginalPrice decimal.NullDecimal
		Discount      int
		Image         string
		Category      string
		Subcategory   string
		Brand         string
		Unit          string
		Weight        string
		InStock       bool
		StockQuantity int
		Rating        float64
		ReviewCount   int
		Tags          []string
	}

	Category struct {
		ID            string
		Name          string
		Slug          string
		Description   string
		Image         string
		Subcategories []string
	}
)

// OnSale reports whether the product carries an active discount.
func (p Product) OnSale() bool {
	return p.Discount > 0
}

// PriceRange bounds are inclusive.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ProductFilters is a set of AND-composed predicates.
// A zero-value field places no constraint.
type ProductFilters struct {
	PriceRange    *PriceRange
	Brands        []string
	Subcategories []string
	InStock       bool
	OnSale        bool
	MinRating     float64
}
