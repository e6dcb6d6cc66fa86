package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

const (
	listProductsSQL = `SELECT id, name, price, stock, image_url
	FROM products ORDER BY created_at, id`

	getProductSQL = `SELECT id, name, price, stock, image_url
	FROM products WHERE id = $1`

	upsertProductSQL = `INSERT INTO products (id, name, price, stock, image_url)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, price = EXCLUDED.price,
	    stock = EXCLUDED.stock, image_url = EXCLUDED.image_url`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the full catalog in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.ImageURL); err != nil {
			return nil, errors.Wrap(err, "scan product row")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read product rows")
	}
	return products, nil
}

// GetByID returns a single product with its current stock snapshot. Returns
// product.ErrNotFound when no matching row exists.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	err := r.pool.QueryRow(ctx, getProductSQL, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %s", id)
	}
	return &p, nil
}

// Upsert inserts or replaces a catalog row. Used by the seeding tool.
func (r *ProductRepository) Upsert(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL, p.ID, p.Name, p.Price, p.Stock, p.ImageURL)
	if err != nil {
		return errors.Wrapf(err, "upsert product %s", p.ID)
	}
	return nil
}
