package service

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
)

var _ port.CartOperator = (*CartService)(nil)

// CartService owns the authoritative set of cart line items and derives
// the order summary from them. Every mutation writes the full snapshot
// through the repository and publishes a cart-changed event.
//
// Boundary conditions are absorbed, never surfaced: over-quantity requests
// clamp to stock, unknown product ids are no-ops, a broken persisted
// record rehydrates as an empty cart.
type CartService struct {
	mu      sync.Mutex
	items   []domain.CartItem
	repo    port.CartRepository
	pricing domain.Pricing
	bus     port.Publisher
}

// NewCartService rehydrates the cart from the repository synchronously.
// A missing or unreadable record starts the cart empty.
func NewCartService(
	repo port.CartRepository, pricing domain.Pricing, bus port.Publisher,
) *CartService {
	const op = "CartService.New"

	s := &CartService{repo: repo, pricing: pricing, bus: bus}

	items, err := repo.Load()
	if err != nil {
		slog.Warn("starting with empty cart", "op", op, "err", err)
		return s
	}
	s.items = items
	return s
}

// AddItem merges the requested quantity into the existing line for the
// product, or appends a new line. The resulting quantity is clamped to
// the stock captured at add-time. Non-positive quantities are ignored.
func (s *CartService) AddItem(p domain.Product, quantity int) {
	if quantity <= 0 || p.StockQuantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.find(p.ID); ok {
		s.items[i].Quantity = clamp(
			s.items[i].Quantity+quantity, 1, p.StockQuantity,
		)
		s.commit(domain.CartActionAdd, p.ID, s.items[i].Quantity)
		return
	}

	line := domain.CartItem{
		ID:            uuid.NewString(),
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Brand:         p.Brand,
		Unit:          p.Unit,
		Weight:        p.Weight,
		Quantity:      clamp(quantity, 1, p.StockQuantity),
		MaxQuantity:   p.StockQuantity,
	}
	s.items = append(s.items, line)
	s.commit(domain.CartActionAdd, p.ID, line.Quantity)
}

// RemoveItem deletes the line for the product. Absent lines are a no-op.
func (s *CartService) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(productID)
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.commit(domain.CartActionRemove, productID, 0)
}

// UpdateQuantity replaces the line quantity, clamped to the quantity cap
// captured at add-time. A quantity of zero or less removes the line.
func (s *CartService) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(productID)
	if !ok {
		return
	}
	s.items[i].Quantity = clamp(quantity, 1, s.items[i].MaxQuantity)
	s.commit(domain.CartActionUpdate, productID, s.items[i].Quantity)
}

// ClearCart empties all line items unconditionally.
func (s *CartService) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commit(domain.CartActionClear, "", 0)
}

func (s *CartService) GetItemQuantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.find(productID); ok {
		return s.items[i].Quantity
	}
	return 0
}

func (s *CartService) IsInCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.find(productID)
	return ok
}

// Items returns the line items in insertion order.
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Summary recomputes the derived pricing breakdown from the current lines.
func (s *CartService) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pricing.Summarize(s.items)
}

func (s *CartService) find(productID string) (int, bool) {
	for i, it := range s.items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return 0, false
}

// commit persists the snapshot and notifies subscribers.
// Callers must hold s.mu.
func (s *CartService) commit(
	action domain.CartAction, productID string, quantity int,
) {
	const op = "CartService.commit"

	if err := s.repo.Save(s.items); err != nil {
		slog.Error("failed to persist cart", "op", op, "err", err)
	}

	if s.bus == nil {
		return
	}
	s.bus.Publish(domain.TopicCartChanged, domain.CartChangedEvent{
		Action:    action,
		ProductID: productID,
		Quantity:  quantity,
		Summary:   s.pricing.Summarize(s.items),
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
