package httphandler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/niksmo/freshmarket/internal/adapter/httphandler"
	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo[T any] struct {
	value T
}

func (r *memRepo[T]) Load() (T, error) { return r.value, nil }
func (r *memRepo[T]) Save(v T) error   { r.value = v; return nil }

type staticCatalog struct {
	products   []domain.Product
	categories []domain.Category
}

func (c staticCatalog) Products() []domain.Product    { return c.products }
func (c staticCatalog) Categories() []domain.Category { return c.categories }

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	provider := staticCatalog{
		products: []domain.Product{
			{
				ID: "p1", Name: "Tomate Italiano", Brand: "Horta Urbana",
				Category: "hortifruti", Subcategory: "legumes",
				Price:         dec(t, "8.90"),
				OriginalPrice: decimal.NewNullDecimal(dec(t, "11.50")),
				Discount:      22, Unit: "kg", InStock: true,
				StockQuantity: 5, Rating: 4.3,
				Tags: []string{"legume", "molho"},
			},
			{
				ID: "p2", Name: "Café Torrado", Brand: "Alto da Serra",
				Category: "bebidas", Price: dec(t, "18.90"), Unit: "un",
				InStock: true, StockQuantity: 42, Rating: 4.7,
				Tags: []string{"café"},
			},
		},
		categories: []domain.Category{
			{ID: "hortifruti", Name: "Hortifruti", Slug: "hortifruti"},
		},
	}

	cartSvc := service.NewCartService(
		&memRepo[[]domain.CartItem]{}, domain.DefaultPricing(), EventBus.New(),
	)
	catalogSvc := service.NewCatalogService(provider, &memRepo[[]string]{})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	checkoutSvc := service.NewCheckoutService(cartSvc, node, 0)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalogSvc)
	httphandler.RegisterCart(mux, cartSvc, catalogSvc)
	httphandler.RegisterFavorites(mux, catalogSvc, catalogSvc)
	httphandler.RegisterCheckout(mux, checkoutSvc)

	srv := httptest.NewServer(httphandler.AllowJSON(mux))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(
	t *testing.T, srv *httptest.Server, method, path, body string,
) (*http.Response, []byte) {
	t.Helper()

	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	} else {
		req, err = http.NewRequest(
			method, srv.URL+path, strings.NewReader(body),
		)
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestCartEndpoints(t *testing.T) {
	srv := newServer(t)

	t.Run("EmptyCart", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view httphandler.CartView
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Empty(t, view.Items)
		assert.Zero(t, view.Summary.ItemCount)
	})

	t.Run("AddUpdateRemove", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1","quantity":3}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view httphandler.CartView
		require.NoError(t, json.Unmarshal(body, &view))
		require.Len(t, view.Items, 1)
		assert.Equal(t, 3, view.Items[0].Quantity)
		assert.True(t, view.Summary.Subtotal.Equal(dec(t, "26.70")))
		assert.True(t, view.Summary.Shipping.Equal(dec(t, "12.90")))
		assert.True(t, view.Summary.Total.Equal(dec(t, "39.60")))

		// stock is 5, requesting 4 more clamps the line
		resp, body = doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1","quantity":4}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.Unmarshal(body, &view))
		require.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
		assert.True(t, view.Summary.Subtotal.Equal(dec(t, "44.50")))

		resp, body = doJSON(t, srv, http.MethodPatch, "/v1/cart/items/p1",
			`{"quantity":0}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Empty(t, view.Items)

		resp, _ = doJSON(t, srv, http.MethodDelete, "/v1/cart/items/p1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("DefaultQuantityIsOne", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view httphandler.CartView
		require.NoError(t, json.Unmarshal(body, &view))
		require.Len(t, view.Items, 1)
		assert.Equal(t, 1, view.Items[0].Quantity)

		resp, _ = doJSON(t, srv, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"ghost"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1","quantity":-1}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NonJSONBody", func(t *testing.T) {
		req, err := http.NewRequest(
			http.MethodPost, srv.URL+"/v1/cart/items",
			strings.NewReader("product_id=p1"),
		)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newServer(t)

	t.Run("SearchAndFilter", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet,
			"/v1/products?q=tomate&category=hortifruti", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ps []httphandler.Product
		require.NoError(t, json.Unmarshal(body, &ps))
		require.Len(t, ps, 1)
		assert.Equal(t, "p1", ps[0].ID)
	})

	t.Run("OnSaleFilter", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet,
			"/v1/products?on_sale=true", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ps []httphandler.Product
		require.NoError(t, json.Unmarshal(body, &ps))
		require.Len(t, ps, 1)
		assert.Equal(t, "p1", ps[0].ID)
	})

	t.Run("SortByPriceDesc", func(t *testing.T) {
		resp, body := doJSON(t, srv, http.MethodGet,
			"/v1/products?sort=price_desc", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ps []httphandler.Product
		require.NoError(t, json.Unmarshal(body, &ps))
		require.Len(t, ps, 2)
		assert.Equal(t, "p2", ps[0].ID)
	})

	t.Run("ProductByID", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodGet, "/v1/products/p2", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, srv, http.MethodGet, "/v1/products/ghost", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadFilterParam", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodGet,
			"/v1/products?price_min=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFavoritesEndpoints(t *testing.T) {
	srv := newServer(t)

	resp, _ := doJSON(t, srv, http.MethodPut, "/v1/favorites/p1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodGet, "/v1/favorites", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ids []string
	require.NoError(t, json.Unmarshal(body, &ids))
	assert.Equal(t, []string{"p1"}, ids)

	resp, _ = doJSON(t, srv, http.MethodPut, "/v1/favorites/ghost", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/v1/favorites/p1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/v1/favorites/p1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"favorite":false}`, string(body))
}

func TestCheckoutEndpoint(t *testing.T) {
	srv := newServer(t)

	checkoutBody := `{
		"address": {
			"street": "Rua das Flores", "number": "123",
			"neighborhood": "Centro", "city": "São Paulo",
			"state": "SP", "zip_code": "01310-100"
		},
		"payment": "pix",
		"coupon_code": "desconto10"
	}`

	t.Run("EmptyCart", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/v1/checkout", checkoutBody)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("PlacesOrderAndClearsCart", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1","quantity":3}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, srv, http.MethodPost, "/v1/checkout", checkoutBody)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var order httphandler.Order
		require.NoError(t, json.Unmarshal(body, &order))
		assert.True(t, strings.HasPrefix(order.ID, "FM"))
		assert.Equal(t, "confirmed", order.Status)
		assert.Equal(t, "DESCONTO10", order.AppliedCoupon)
		require.Len(t, order.Items, 1)
		assert.True(t, order.Summary.Total.Equal(dec(t, "39.60")),
			"coupon must not change the total")

		resp, body = doJSON(t, srv, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var view httphandler.CartView
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Empty(t, view.Items)
	})

	t.Run("InvalidForm", func(t *testing.T) {
		resp, _ := doJSON(t, srv, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p2"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, srv, http.MethodPost, "/v1/checkout",
			`{"address":{"street":""},"payment":"pix"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
