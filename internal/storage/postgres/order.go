package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafesincuchara/ecommer/internal/domain/order"
)

const (
	decrementStockSQL = `UPDATE products SET stock = stock - $2
	WHERE id = $1 AND stock >= $2`

	productExistsSQL = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

	insertOrderSQL = `INSERT INTO orders
	(id, customer_name, customer_email, customer_phone, shipping_address, notes, total_amount)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertItemSQL = `INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
	VALUES ($1, $2, $3, $4, $5)`
)

var _ order.Creator = (*OrderRepository)(nil)

// OrderRepository implements the atomic order creation primitive on
// PostgreSQL. One transaction re-checks and decrements stock for every line
// and inserts the order header plus item rows; it commits fully or applies
// nothing. Row-level locking on the conditional UPDATE serializes
// concurrent submissions per product, so stock can never go negative.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateAtomic persists the draft and returns the durable order ID.
// Failure modes map to the order error taxonomy: insufficient stock yields
// *order.StockConflictError, a vanished product yields
// *order.UnknownProductError, other integrity failures yield
// order.ErrConstraint, and connectivity problems yield
// *order.TransportError.
func (r *OrderRepository) CreateAtomic(ctx context.Context, d *order.Draft) (string, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", &order.TransportError{Err: errors.Wrap(err, "begin transaction")}
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, item := range d.Items {
		tag, err := tx.Exec(ctx, decrementStockSQL, item.ProductID, item.Quantity)
		if err != nil {
			return "", mapPgError(err, "decrement stock")
		}
		if tag.RowsAffected() == 0 {
			// Either the row is gone or the remaining stock is short.
			var exists bool
			if err := tx.QueryRow(ctx, productExistsSQL, item.ProductID).Scan(&exists); err != nil {
				return "", mapPgError(err, "check product")
			}
			if !exists {
				return "", &order.UnknownProductError{ProductID: item.ProductID}
			}
			return "", &order.StockConflictError{ProductID: item.ProductID, Requested: item.Quantity}
		}
	}

	orderID := uuid.New().String()
	_, err = tx.Exec(ctx, insertOrderSQL,
		orderID,
		d.CustomerName,
		d.CustomerEmail,
		nullable(d.CustomerPhone),
		d.ShippingAddress,
		nullable(d.Notes),
		d.TotalAmount,
	)
	if err != nil {
		return "", mapPgError(err, "insert order")
	}

	for _, item := range d.Items {
		_, err = tx.Exec(ctx, insertItemSQL,
			orderID, item.ProductID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return "", mapPgError(err, "insert order item")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", &order.TransportError{Err: errors.Wrap(err, "commit")}
	}
	return orderID, nil
}

// nullable maps an absent optional field to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mapPgError classifies a pgx error: integrity constraint violations (class
// 23) become order.ErrConstraint; everything else is a transport failure.
func mapPgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return errors.Wrapf(order.ErrConstraint, "%s: %s", op, pgErr.Message)
	}
	return &order.TransportError{Err: errors.Wrap(err, op)}
}
