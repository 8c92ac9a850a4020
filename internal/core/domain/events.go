package domain

// TopicCartChanged is published on the event bus after every cart mutation.
const TopicCartChanged = "cart:changed"

type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
	CartActionUpdate CartAction = "update"
	CartActionClear  CartAction = "clear"
)

// CartChangedEvent carries the mutation and the freshly derived summary.
type CartChangedEvent struct {
	Action    CartAction
	ProductID string
	Quantity  int
	Summary   CartSummary
}
