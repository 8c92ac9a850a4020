package port

import (
	"context"

	"github.com/niksmo/freshmarket/internal/core/domain"
)

// CartRepository is the durable record the cart engine writes its full
// line-item snapshot to after every mutation. Load of a missing record
// yields an empty slice, not an error.
type CartRepository interface {
	Load() ([]domain.CartItem, error)
	Save([]domain.CartItem) error
}

// FavoritesRepository persists the favorites set independently of the cart.
type FavoritesRepository interface {
	Load() ([]string, error)
	Save([]string) error
}

// CatalogProvider supplies the finalized static catalog at startup.
type CatalogProvider interface {
	Products() []domain.Product
	Categories() []domain.Category
}

// Publisher dispatches domain events to interested subscribers.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

type CartOperator interface {
	AddItem(p domain.Product, quantity int)
	RemoveItem(productID string)
	UpdateQuantity(productID string, quantity int)
	ClearCart()
	GetItemQuantity(productID string) int
	IsInCart(productID string) bool
	Items() []domain.CartItem
	Summary() domain.CartSummary
}

type CatalogReader interface {
	Products() []domain.Product
	Categories() []domain.Category
	SearchProducts(query, category string) []domain.Product
	GetProductsByCategory(category string) []domain.Product
	GetProductByID(id string) (domain.Product, error)
	FilterProducts(ps []domain.Product, f domain.ProductFilters) []domain.Product
}

type FavoritesKeeper interface {
	AddToFavorites(productID string)
	RemoveFromFavorites(productID string)
	IsFavorite(productID string) bool
	Favorites() []string
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error)
}
