package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/freshmarket/internal/adapter/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("EmbeddedSeed", func(t *testing.T) {
		p, err := catalog.Load("")
		require.NoError(t, err)

		products := p.Products()
		require.NotEmpty(t, products)
		require.NotEmpty(t, p.Categories())

		ids := make(map[string]struct{})
		for _, v := range products {
			assert.NotEmpty(t, v.ID)
			assert.NotEmpty(t, v.Name)
			assert.False(t, v.Price.IsNegative())
			assert.GreaterOrEqual(t, v.Rating, 0.0)
			assert.LessOrEqual(t, v.Rating, 5.0)
			if v.OriginalPrice.Valid {
				assert.True(t,
					v.OriginalPrice.Decimal.GreaterThanOrEqual(v.Price),
					"product %s: original price below price", v.ID,
				)
			}
			_, dup := ids[v.ID]
			assert.False(t, dup, "duplicate id %s", v.ID)
			ids[v.ID] = struct{}{}
		}
	})

	t.Run("FileOverridesSeed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `{
			"products": [{
				"id": "x1", "name": "Manga Palmer", "price": 9.90,
				"category": "hortifruti", "brand": "Pomar",
				"unit": "kg", "in_stock": true, "stock_quantity": 10,
				"rating": 4.1, "review_count": 3, "tags": ["fruta"]
			}],
			"categories": []
		}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		p, err := catalog.Load(path)
		require.NoError(t, err)

		products := p.Products()
		require.Len(t, products, 1)
		assert.Equal(t, "Manga Palmer", products[0].Name)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

		_, err := catalog.Load(path)
		require.Error(t, err)
	})

	t.Run("RejectsInvalidProducts", func(t *testing.T) {
		cases := map[string]string{
			"NegativePrice": `{"products":[{"id":"x","name":"n","price":-1,
				"brand":"b","unit":"un","in_stock":true,"stock_quantity":1,
				"rating":4,"review_count":0,"tags":[]}],"categories":[]}`,
			"OriginalBelowPrice": `{"products":[{"id":"x","name":"n","price":10,
				"original_price":5,"brand":"b","unit":"un","in_stock":true,
				"stock_quantity":1,"rating":4,"review_count":0,"tags":[]}],
				"categories":[]}`,
			"RatingOutOfRange": `{"products":[{"id":"x","name":"n","price":1,
				"brand":"b","unit":"un","in_stock":true,"stock_quantity":1,
				"rating":6,"review_count":0,"tags":[]}],"categories":[]}`,
			"DuplicateIDs": `{"products":[
				{"id":"x","name":"n","price":1,"brand":"b","unit":"un",
				 "in_stock":true,"stock_quantity":1,"rating":4,
				 "review_count":0,"tags":[]},
				{"id":"x","name":"m","price":2,"brand":"b","unit":"un",
				 "in_stock":true,"stock_quantity":1,"rating":4,
				 "review_count":0,"tags":[]}],"categories":[]}`,
		}

		for name, data := range cases {
			t.Run(name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "catalog.json")
				require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

				_, err := catalog.Load(path)
				require.Error(t, err)
			})
		}
	})
}
