package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/freshmarket/internal/core/port"
)

// GET    /v1/cart
// POST   /v1/cart/items            {"product_id", "quantity"?}
// PATCH  /v1/cart/items/{productId} {"quantity"}
// DELETE /v1/cart/items/{productId}
// DELETE /v1/cart

type CartHandler struct {
	cart    port.CartOperator
	catalog port.CatalogReader
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartOperator, catalog port.CatalogReader,
) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/cart/items/{productId}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{productId}", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartView(h.cart.Items(), h.cart.Summary()))
}

// AddItem resolves the product in the live catalog and hands it to the
// cart engine. An omitted quantity defaults to one; an explicit
// non-positive quantity is rejected here, at the edge.
func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			http.Error(w, "quantity must be positive", http.StatusBadRequest)
			return
		}
		quantity = *req.Quantity
	}

	p, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	h.cart.AddItem(p, quantity)
	writeJSON(w, http.StatusOK, toCartView(h.cart.Items(), h.cart.Summary()))
}

func (h CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateQuantity"
	log := slog.With("op", op)

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.UpdateQuantity(r.PathValue("productId"), req.Quantity)
	writeJSON(w, http.StatusOK, toCartView(h.cart.Items(), h.cart.Summary()))
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.PathValue("productId"))
	writeJSON(w, http.StatusOK, toCartView(h.cart.Items(), h.cart.Summary()))
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart()
	writeJSON(w, http.StatusOK, toCartView(h.cart.Items(), h.cart.Summary()))
}
