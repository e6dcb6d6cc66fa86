// Package handler exposes the storefront HTTP API: catalog reads, the
// session cart, and order placement.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
	"github.com/cafesincuchara/ecommer/internal/domain/order"
	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

// Handler serves the storefront API, delegating business logic to the cart
// manager and the order service.
type Handler struct {
	products product.Repository
	carts    *cart.Manager
	orders   *order.Service
}

// New constructs a Handler with the required domain dependencies.
func New(products product.Repository, carts *cart.Manager, orders *order.Service) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

// Routes returns the API router mounted under /api.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Get("/cart", h.getCart)
		r.Delete("/cart", h.clearCart)
		r.Post("/cart/items", h.addCartItem)
		r.Put("/cart/items/{id}", h.updateCartItem)
		r.Delete("/cart/items/{id}", h.removeCartItem)

		r.Post("/orders", h.placeOrder)
	})
	return r
}
