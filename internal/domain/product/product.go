// Package product defines the catalog model consumed by the cart and the
// order placement flow.
package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Stock is a
// snapshot of availability at read time: advisory for cart clamping, only
// authoritative inside the order creation transaction.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Stock    int
	ImageURL string
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
