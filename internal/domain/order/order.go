// Package order turns a cart and shopper-entered fields into a validated
// order draft and submits it through the atomic creation primitive.
package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is a single line of an order draft, with the unit price captured at
// submission time.
type Item struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Draft is an immutable snapshot ready for submission. It is accepted or
// discarded as a whole; a failed submission never mutates it. Phone and
// Notes are empty strings when absent.
type Draft struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Notes           string
	Items           []Item
	TotalAmount     decimal.Decimal
}

// Notification is the payload for the best-effort confirmation dispatch
// after a durable order creation.
type Notification struct {
	OrderID         string
	CustomerEmail   string
	CustomerName    string
	Items           []Item
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Notes           string
}

// Creator is the atomic order-creation primitive. Within one transaction it
// must re-check and decrement stock for every item and insert the order
// header and line rows, all succeeding together or none applying. It returns
// the durable order identifier.
type Creator interface {
	CreateAtomic(ctx context.Context, d *Draft) (orderID string, err error)
}

// Notifier dispatches the order confirmation. One attempt, outcome never
// affects order success.
type Notifier interface {
	Dispatch(ctx context.Context, n Notification) error
}
