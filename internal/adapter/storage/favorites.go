package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/niksmo/freshmarket/internal/core/port"
)

var _ port.FavoritesRepository = (*FavoritesRepository)(nil)

type favoritesRecordV1 struct {
	Version    int      `json:"version"`
	ProductIDs []string `json:"product_ids"`
}

// FavoritesRepository stores the favorites set as its own JSON record,
// fully independent of the cart record. Load fails open.
type FavoritesRepository struct {
	store RecordStore
}

func NewFavoritesRepository(store RecordStore) FavoritesRepository {
	return FavoritesRepository{store}
}

func (r FavoritesRepository) Load() ([]string, error) {
	const op = "FavoritesRepository.Load"

	data, err := r.store.ReadRecord(favoritesRecordName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if data == nil {
		return nil, nil
	}

	var rec favoritesRecordV1
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("dropping unparseable favorites record", "op", op, "err", err)
		return nil, nil
	}
	return rec.ProductIDs, nil
}

func (r FavoritesRepository) Save(productIDs []string) error {
	const op = "FavoritesRepository.Save"

	rec := favoritesRecordV1{Version: 1, ProductIDs: productIDs}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.WriteRecord(favoritesRecordName, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
