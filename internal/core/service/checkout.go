package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
)

var _ port.OrderPlacer = (*CheckoutService)(nil)

const deliveryEstimate = 48 * time.Hour

// CheckoutService finishes an order: it validates the address and payment
// form, simulates payment processing with a fixed delay, snapshots the
// cart into an order and clears the cart exactly once.
//
// Orders are returned to the caller and not persisted anywhere.
type CheckoutService struct {
	cart  port.CartOperator
	node  *snowflake.Node
	delay time.Duration
}

func NewCheckoutService(
	cart port.CartOperator, node *snowflake.Node, delay time.Duration,
) *CheckoutService {
	return &CheckoutService{cart: cart, node: node, delay: delay}
}

// PlaceOrder runs the checkout. The processing delay is not cancellable:
// once started it always runs to completion, the context is only checked
// on entry.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context, req domain.CheckoutRequest,
) (domain.Order, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	if err := validateAddress(req.Address); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := validatePayment(req.Payment, req.Card); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	summary := s.cart.Summary()

	// Simulated payment processing.
	time.Sleep(s.delay)

	now := time.Now()
	order := domain.Order{
		ID:                "FM" + s.node.Generate().String(),
		Items:             items,
		Address:           req.Address,
		Payment:           req.Payment,
		Summary:           summary,
		Status:            domain.OrderStatusConfirmed,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(deliveryEstimate),
	}

	s.cart.ClearCart()

	log.Info("order placed",
		"orderID", order.ID, "items", len(order.Items),
		"total", order.Summary.Total,
	)
	return order, nil
}

func validateAddress(a domain.Address) error {
	if a.Street == "" || a.Number == "" || a.Neighborhood == "" ||
		a.City == "" || a.State == "" {
		return domain.ErrInvalidAddress
	}
	if len(digitsOnly(a.ZipCode)) != 8 {
		return domain.ErrInvalidAddress
	}
	return nil
}

func validatePayment(pt domain.PaymentType, card domain.CardData) error {
	switch pt {
	case domain.PaymentCredit, domain.PaymentDebit:
		if card.Number == "" || card.HolderName == "" ||
			card.Expiry == "" || card.CVV == "" {
			return domain.ErrInvalidPayment
		}
		return nil
	case domain.PaymentPix, domain.PaymentBoleto:
		return nil
	default:
		return domain.ErrInvalidPayment
	}
}

func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}
