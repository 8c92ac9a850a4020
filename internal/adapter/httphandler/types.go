package httphandler

import (
	"time"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
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

	Category struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Slug          string   `json:"slug"`
		Description   string   `json:"description"`
		Image         string   `json:"image"`
		Subcategories []string `json:"subcategories"`
	}

	CartItem struct {
		ID            string           `json:"id"`
		ProductID     string           `json:"product_id"`
		Name          string           `json:"name"`
		Price         decimal.Decimal  `json:"price"`
		OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
		Image         string           `json:"image"`
		Brand         string           `json:"brand"`
		Unit          string           `json:"unit"`
		Weight        string           `json:"weight,omitempty"`
		Quantity      int              `json:"quantity"`
		MaxQuantity   int              `json:"max_quantity"`
	}

	CartSummary struct {
		Subtotal  decimal.Decimal `json:"subtotal"`
		Discount  decimal.Decimal `json:"discount"`
		Shipping  decimal.Decimal `json:"shipping"`
		Total     decimal.Decimal `json:"total"`
		ItemCount int             `json:"item_count"`
	}

	CartView struct {
		Items   []CartItem  `json:"items"`
		Summary CartSummary `json:"summary"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Quantity  *int   `json:"quantity,omitempty"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	Address struct {
		Street       string `json:"street"`
		Number       string `json:"number"`
		Complement   string `json:"complement,omitempty"`
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
		State        string `json:"state"`
		ZipCode      string `json:"zip_code"`
	}

	CardData struct {
		Number       string `json:"number"`
		HolderName   string `json:"holder_name"`
		Expiry       string `json:"expiry"`
		CVV          string `json:"cvv"`
		Installments int    `json:"installments,omitempty"`
	}

	CheckoutRequest struct {
		Address    Address  `json:"address"`
		Payment    string   `json:"payment"`
		Card       CardData `json:"card"`
		CouponCode string   `json:"coupon_code,omitempty"`
	}

	Order struct {
		ID                string      `json:"id"`
		Items             []CartItem  `json:"items"`
		Address           Address     `json:"address"`
		Payment           string      `json:"payment"`
		Summary           CartSummary `json:"summary"`
		Status            string      `json:"status"`
		CreatedAt         time.Time   `json:"created_at"`
		EstimatedDelivery time.Time   `json:"estimated_delivery"`
		AppliedCoupon     string      `json:"applied_coupon,omitempty"`
	}
)

func toProductView(p domain.Product) Product {
	v := Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Discount:      p.Discount,
		Image:         p.Image,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Brand:         p.Brand,
		Unit:          p.Unit,
		Weight:        p.Weight,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Tags:          p.Tags,
	}
	if p.OriginalPrice.Valid {
		op := p.OriginalPrice.Decimal
		v.OriginalPrice = &op
	}
	return v
}

func toProductViews(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductView(p))
	}
	return out
}

func toCartItemView(it domain.CartItem) CartItem {
	v := CartItem{
		ID:          it.ID,
		ProductID:   it.ProductID,
		Name:        it.Name,
		Price:       it.Price,
		Image:       it.Image,
		Brand:       it.Brand,
		Unit:        it.Unit,
		Weight:      it.Weight,
		Quantity:    it.Quantity,
		MaxQuantity: it.MaxQuantity,
	}
	if it.OriginalPrice.Valid {
		op := it.OriginalPrice.Decimal
		v.OriginalPrice = &op
	}
	return v
}

func toCartView(items []domain.CartItem, s domain.CartSummary) CartView {
	v := CartView{
		Items:   make([]CartItem, 0, len(items)),
		Summary: toSummaryView(s),
	}
	for _, it := range items {
		v.Items = append(v.Items, toCartItemView(it))
	}
	return v
}

func toSummaryView(s domain.CartSummary) CartSummary {
	return CartSummary{
		Subtotal:  s.Subtotal,
		Discount:  s.Discount,
		Shipping:  s.Shipping,
		Total:     s.Total,
		ItemCount: s.ItemCount,
	}
}
