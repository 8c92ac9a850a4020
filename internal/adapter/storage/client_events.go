package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EventAppender is the append-only side of the store.
type EventAppender interface {
	AppendEvent(data []byte) error
}

type clientEventV1 struct {
	At        time.Time       `json:"at"`
	Action    string          `json:"action"`
	ProductID string          `json:"product_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// ClientEventsRecorder journals every cart mutation to the event log.
// It subscribes to the cart-changed topic and records synchronously in
// the publishing turn, so a mutation and its event land together.
type ClientEventsRecorder struct {
	appender EventAppender
}

func NewClientEventsRecorder(appender EventAppender) ClientEventsRecorder {
	return ClientEventsRecorder{appender}
}

type subscriber interface {
	Subscribe(topic string, fn interface{}) error
}

func (r ClientEventsRecorder) SubscribeTo(bus subscriber) error {
	const op = "ClientEventsRecorder.SubscribeTo"

	err := bus.Subscribe(domain.TopicCartChanged, r.recordCartChange)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ClientEventsRecorder) recordCartChange(evt domain.CartChangedEvent) {
	const op = "ClientEventsRecorder.recordCartChange"
	log := slog.With("op", op)

	v := clientEventV1{
		At:        time.Now(),
		Action:    string(evt.Action),
		ProductID: evt.ProductID,
		Quantity:  evt.Quantity,
		Subtotal:  evt.Summary.Subtotal,
		Total:     evt.Summary.Total,
		ItemCount: evt.Summary.ItemCount,
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode event", "err", err)
		return
	}

	if err := r.appender.AppendEvent(data); err != nil {
		log.Error("failed to append event", "err", err)
	}
}
