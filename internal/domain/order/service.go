package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
)

// Service is the order submission gateway: it assembles a draft from the
// session cart, invokes the atomic creation primitive, and on durable
// success clears the cart and fires the confirmation dispatch.
type Service struct {
	creator  Creator
	notifier Notifier
	lg       *zap.Logger
}

// NewService creates a Service with the required collaborators.
func NewService(creator Creator, notifier Notifier, lg *zap.Logger) *Service {
	return &Service{
		creator:  creator,
		notifier: notifier,
		lg:       lg,
	}
}

// Result reports a durably created order. NotificationSent is false when the
// confirmation dispatch failed; that is a soft warning, never an order
// failure.
type Result struct {
	OrderID          string
	TotalAmount      decimal.Decimal
	NotificationSent bool
}

// Submit runs the two-phase submission. Phase 1 is the atomic creation: any
// failure there is terminal for this attempt and leaves the cart untouched
// for a manual retry. Phase 2, entered only after durable success, clears
// the cart and makes a single best-effort notification attempt.
//
// There is no idempotency key: a shopper retrying after a transport timeout
// whose creation actually committed server-side will submit a second order.
func (s *Service) Submit(ctx context.Context, store *cart.Store, in Input) (*Result, error) {
	draft, err := AssembleDraft(store.Lines(), in)
	if err != nil {
		return nil, err
	}

	orderID, err := s.creator.CreateAtomic(ctx, draft)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	// Durable from here on. The cart clears now and never speculatively.
	store.Clear(ctx)

	res := &Result{
		OrderID:          orderID,
		TotalAmount:      draft.TotalAmount,
		NotificationSent: true,
	}
	if err := s.notifier.Dispatch(ctx, draft.notification(orderID)); err != nil {
		s.lg.Warn("order confirmation dispatch failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		res.NotificationSent = false
	}
	return res, nil
}
