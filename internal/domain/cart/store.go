package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

// Port is the persistence boundary for one session's cart. Load returns the
// stored line sequence (nil when nothing is stored); Save overwrites it.
type Port interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

// PortFactory creates the persistence port bound to a session.
type PortFactory interface {
	ForSession(sessionID string) Port
}

// Store is the single source of truth for one session's pending selection.
// Every mutation is written through to the port; persistence failures are
// logged and absorbed, leaving the in-memory cart authoritative for the
// session. Mutations are serialized internally so overlapping requests for
// the same session cannot interleave.
type Store struct {
	mu   sync.Mutex
	cart *Cart
	port Port
	lg   *zap.Logger
}

// NewStore builds a store rehydrated from the port. A load error or corrupt
// snapshot yields an empty cart rather than a failure.
func NewStore(ctx context.Context, port Port, lg *zap.Logger) *Store {
	lines, err := port.Load(ctx)
	if err != nil {
		lg.Warn("cart load failed, starting empty", zap.Error(err))
		lines = nil
	}
	return &Store{
		cart: NewFromLines(lines),
		port: port,
		lg:   lg,
	}
}

// Add adds qty units of the product and persists the result.
func (s *Store) Add(ctx context.Context, p product.Product, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(p, qty)
	s.persist(ctx)
}

// SetQuantity updates (or removes, at zero) a line and persists the result.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, qty)
	s.persist(ctx)
}

// Remove deletes a line and persists the result.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
	s.persist(ctx)
}

// Clear empties the cart and persists the result. Callers in the order flow
// invoke it only after a confirmed durable order creation.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persist(ctx)
}

// Lines returns a copy of the current lines in display order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Total recomputes the cart total.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Len returns the number of lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Len()
}

// persist writes the full line sequence through the port. Must be called
// with s.mu held. Errors never block the mutation that already took effect.
func (s *Store) persist(ctx context.Context) {
	if err := s.port.Save(ctx, s.cart.Lines()); err != nil {
		s.lg.Warn("cart save failed, in-memory state retained", zap.Error(err))
	}
}
