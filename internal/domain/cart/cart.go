// Package cart holds a shopper's pending selection: an insertion-ordered set
// of lines keyed by product, each clamped to the stock available when the
// product was added or last re-added.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

// Line is one product entry in the cart. Quantity always satisfies
// 1 <= Quantity <= StockCeiling; a line that would reach quantity zero is
// removed instead of retained.
type Line struct {
	ProductID    string
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	StockCeiling int
	ImageURL     string
}

// Amount returns UnitPrice * Quantity for this line.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered mapping from product ID to Line. Display order is
// insertion order; product identity is the uniqueness key.
type Cart struct {
	lines []Line
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// NewFromLines rebuilds a cart from a persisted line sequence, preserving
// order. Lines that violate the cart invariants (non-positive quantity,
// quantity above the stock ceiling) are repaired rather than rejected, so a
// stale snapshot never fails rehydration.
func NewFromLines(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 || l.StockCeiling < 1 {
			continue
		}
		if _, ok := c.index[l.ProductID]; ok {
			continue
		}
		if l.Quantity > l.StockCeiling {
			l.Quantity = l.StockCeiling
		}
		c.index[l.ProductID] = len(c.lines)
		c.lines = append(c.lines, l)
	}
	return c
}

// Add puts qty units of p into the cart. An already-present product has its
// quantity incremented and its stock ceiling refreshed from p, so the clamp
// always uses the latest snapshot rather than the one stored with the line.
// The result is silently clamped to that ceiling; a product whose stock has
// reached zero yields no line (and drops an existing one).
func (c *Cart) Add(p product.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if i, ok := c.index[p.ID]; ok {
		if p.Stock < 1 {
			c.Remove(p.ID)
			return
		}
		c.lines[i].StockCeiling = p.Stock
		c.lines[i].Quantity = clamp(c.lines[i].Quantity+qty, p.Stock)
		return
	}
	if p.Stock < 1 {
		return
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.Price,
		Quantity:     clamp(qty, p.Stock),
		StockCeiling: p.Stock,
		ImageURL:     p.ImageURL,
	})
}

// SetQuantity sets the line's quantity, clamped to [0, stock ceiling].
// A resulting quantity of zero removes the line entirely. Unknown product
// IDs are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	if qty < 0 {
		qty = 0
	}
	qty = clamp(qty, c.lines[i].StockCeiling)
	if qty == 0 {
		c.Remove(productID)
		return
	}
	c.lines[i].Quantity = qty
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID string) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Total recomputes the cart total from the current lines on every call.
// It is never cached, so it cannot drift from the line contents.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Lines returns a copy of the current line sequence in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

func clamp(qty, ceiling int) int {
	if qty > ceiling {
		return ceiling
	}
	return qty
}
