package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
	"github.com/cafesincuchara/ecommer/internal/domain/product"
)

// cartLineView is one cart line in the API shape. Amounts are decimal
// strings.
type cartLineView struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	StockCeiling int    `json:"stockCeiling"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Amount       string `json:"amount"`
}

type cartView struct {
	Items []cartLineView `json:"items"`
	Total string         `json:"total"`
}

func toCartView(s *cart.Store) cartView {
	lines := s.Lines()
	items := make([]cartLineView, len(lines))
	for i, l := range lines {
		items[i] = cartLineView{
			ProductID:    l.ProductID,
			Name:         l.Name,
			UnitPrice:    l.UnitPrice.StringFixed(2),
			Quantity:     l.Quantity,
			StockCeiling: l.StockCeiling,
			ImageURL:     l.ImageURL,
			Amount:       l.Amount().StringFixed(2),
		}
	}
	return cartView{
		Items: items,
		Total: s.Total().StringFixed(2),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Session(r.Context(), session(w, r))
	writeJSON(w, http.StatusOK, toCartView(store))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("get product for cart",
			zap.String("product_id", req.ProductID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}

	store := h.carts.Session(r.Context(), session(w, r))
	store.Add(r.Context(), *p, req.Quantity)
	writeJSON(w, http.StatusOK, toCartView(store))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store := h.carts.Session(r.Context(), session(w, r))
	store.SetQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	writeJSON(w, http.StatusOK, toCartView(store))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Session(r.Context(), session(w, r))
	store.Remove(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, toCartView(store))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Session(r.Context(), session(w, r))
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, toCartView(store))
}
