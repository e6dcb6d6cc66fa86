package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

// productView is the catalog JSON shape. Price is a decimal string.
type productView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func toProductView(p product.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Stock:    p.Stock,
		ImageURL: p.ImageURL,
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load catalog")
		return
	}

	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("get product", zap.String("product_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}
	writeJSON(w, http.StatusOK, toProductView(*p))
}
