package domain

import "github.com/shopspring/decimal"

// CartItem is one cart line. Product facts are snapshotted at the moment
// of first addition and never re-read from the live catalog.
//
// Invariants: at most one line per ProductID,
// 1 <= Quantity <= MaxQuantity.
type CartItem struct {
	ID            string
	ProductID     string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Image         string
	Brand         string
	Unit          string
	Weight        string
	Quantity      int
	MaxQuantity   int
}

// LineTotal is Price multiplied by Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSummary is the derived pricing breakdown. It is never stored,
// always recomputed from the current line items.
type CartSummary struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// Pricing holds the shipping rules applied when summarizing a cart.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// DefaultPricing returns the storefront rates: free shipping from 150.00,
// otherwise a flat 12.90 fee.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.New(150, 0),
		ShippingFee:           decimal.New(1290, -2),
	}
}

// Summarize computes the order summary for the given line items:
//
//	subtotal  = sum(price * quantity)
//	discount  = sum((originalPrice - price) * quantity) over discounted lines
//	shipping  = 0 if subtotal >= threshold, else the flat fee
//	total     = subtotal + shipping
//	itemCount = sum(quantity)
func (p Pricing) Summarize(items []CartItem) CartSummary {
	s := CartSummary{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		s.Subtotal = s.Subtotal.Add(it.Price.Mul(qty))
		if it.OriginalPrice.Valid {
			saved := it.OriginalPrice.Decimal.Sub(it.Price)
			s.Discount = s.Discount.Add(saved.Mul(qty))
		}
		s.ItemCount += it.Quantity
	}

	if s.Subtotal.LessThan(p.FreeShippingThreshold) {
		s.Shipping = p.ShippingFee
	}
	s.Total = s.Subtotal.Add(s.Shipping)
	return s
}
