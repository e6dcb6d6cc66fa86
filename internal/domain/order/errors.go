package order

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

// ErrConstraint indicates the creation primitive rejected the order for a
// database constraint violation other than stock.
var ErrConstraint = errors.New("order violates a storage constraint")

// ValidationErrors carries every assembler rule violation found in one pass.
// It is never truncated to the first failure, so the shopper sees all
// problems at once.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return "invalid order: " + strings.Join(e, "; ")
}

// StockConflictError indicates current stock can no longer satisfy the
// requested quantity for a product. Terminal for the attempt; the cart is
// retained so the shopper can adjust and resubmit.
type StockConflictError struct {
	ProductID string
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// UnknownProductError indicates a draft line references a product that no
// longer exists in the catalog.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// TransportError wraps a network or database connectivity failure while
// contacting the creation primitive. For the shopper it reads like a stock
// conflict (retry is manual); logs keep the distinction.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "order submission transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
