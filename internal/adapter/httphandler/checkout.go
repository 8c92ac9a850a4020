package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
)

// POST /v1/checkout (response 201 Created, 400, 409 empty cart, 422 invalid form)

// validCoupon is purely cosmetic: it is echoed back on the order and
// never changes the computed totals.
const validCoupon = "DESCONTO10"

type CheckoutHandler struct {
	placer port.OrderPlacer
}

func RegisterCheckout(mux *http.ServeMux, placer port.OrderPlacer) {
	h := CheckoutHandler{placer}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.placer.PlaceOrder(r.Context(), toCheckoutRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusConflict)
		case errors.Is(err, domain.ErrInvalidAddress),
			errors.Is(err, domain.ErrInvalidPayment):
			http.Error(w, "invalid checkout form", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "failed to place order", http.StatusServiceUnavailable)
			log.Error("failed to place order", "err", err)
		}
		return
	}

	view := toOrderView(order)
	if strings.EqualFold(req.CouponCode, validCoupon) {
		view.AppliedCoupon = validCoupon
	}

	writeJSON(w, http.StatusCreated, view)
	log.Info("order confirmed", "orderID", order.ID)
}

func toCheckoutRequest(req CheckoutRequest) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Address: domain.Address(req.Address),
		Payment: domain.PaymentType(req.Payment),
		Card: domain.CardData{
			Number:       req.Card.Number,
			HolderName:   req.Card.HolderName,
			Expiry:       req.Card.Expiry,
			CVV:          req.Card.CVV,
			Installments: req.Card.Installments,
		},
	}
}

func toOrderView(o domain.Order) Order {
	items := make([]CartItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toCartItemView(it))
	}
	return Order{
		ID:                o.ID,
		Items:             items,
		Address:           Address(o.Address),
		Payment:           string(o.Payment),
		Summary:           toSummaryView(o.Summary),
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}
