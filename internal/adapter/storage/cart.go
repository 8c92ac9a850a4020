package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartRepository = (*CartRepository)(nil)

// The record names match the storefront's historical local-storage keys.
const (
	cartRecordName      = "freshmarket_cart"
	favoritesRecordName = "freshmarket_favorites"
)

// RecordStore is the whole-record read/write contract the repositories
// are built on.
type RecordStore interface {
	ReadRecord(name string) ([]byte, error)
	WriteRecord(name string, data []byte) error
}

type (
	cartRecordV1 struct {
		Version int          `json:"version"`
		Items   []cartItemV1 `json:"items"`
	}

	cartItemV1 struct {
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
)

// CartRepository stores the ordered line-item list as a versioned JSON
// record. Load fails open: a missing or unparseable record yields an
// empty cart.
type CartRepository struct {
	store RecordStore
}

func NewCartRepository(store RecordStore) CartRepository {
	return CartRepository{store}
}

func (r CartRepository) Load() ([]domain.CartItem, error) {
	const op = "CartRepository.Load"

	data, err := r.store.ReadRecord(cartRecordName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if data == nil {
		return nil, nil
	}

	var rec cartRecordV1
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("dropping unparseable cart record", "op", op, "err", err)
		return nil, nil
	}

	items := make([]domain.CartItem, 0, len(rec.Items))
	for _, v := range rec.Items {
		items = append(items, v.toDomain())
	}
	return items, nil
}

func (r CartRepository) Save(items []domain.CartItem) error {
	const op = "CartRepository.Save"

	rec := cartRecordV1{Version: 1, Items: make([]cartItemV1, 0, len(items))}
	for _, it := range items {
		rec.Items = append(rec.Items, toCartItemV1(it))
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.WriteRecord(cartRecordName, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (v cartItemV1) toDomain() domain.CartItem {
	it := domain.CartItem{
		ID:          v.ID,
		ProductID:   v.ProductID,
		Name:        v.Name,
		Price:       v.Price,
		Image:       v.Image,
		Brand:       v.Brand,
		Unit:        v.Unit,
		Weight:      v.Weight,
		Quantity:    v.Quantity,
		MaxQuantity: v.MaxQuantity,
	}
	if v.OriginalPrice != nil {
		it.OriginalPrice = decimal.NewNullDecimal(*v.OriginalPrice)
	}
	return it
}

func toCartItemV1(it domain.CartItem) cartItemV1 {
	v := cartItemV1{
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
