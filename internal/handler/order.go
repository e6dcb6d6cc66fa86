package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/cafesincuchara/ecommer/internal/domain/order"
)

type placeOrderRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type placeOrderResponse struct {
	OrderID          string `json:"orderId"`
	TotalAmount      string `json:"totalAmount"`
	NotificationSent bool   `json:"notificationSent"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store := h.carts.Session(r.Context(), session(w, r))
	res, err := h.orders.Submit(r.Context(), store, order.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:          res.OrderID,
		TotalAmount:      res.TotalAmount.StringFixed(2),
		NotificationSent: res.NotificationSent,
	})
}

// writeOrderError maps the order error taxonomy onto HTTP responses. The
// shopper gets actionable messages for validation and stock problems;
// storage and transport failures surface generically and land in the logs
// with full detail.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs order.ValidationErrors
	if errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, "order validation failed", verrs...)
		return
	}

	var scErr *order.StockConflictError
	if errors.As(err, &scErr) {
		writeError(w, http.StatusConflict, scErr.Error())
		return
	}

	var upErr *order.UnknownProductError
	if errors.As(err, &upErr) {
		writeError(w, http.StatusUnprocessableEntity, upErr.Error())
		return
	}

	lg := zctx.From(r.Context())
	var tErr *order.TransportError
	switch {
	case errors.As(err, &tErr):
		lg.Error("order submission transport failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not reach order storage, please try again")
	case errors.Is(err, order.ErrConstraint):
		lg.Error("order rejected by storage constraint", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not process order")
	default:
		lg.Error("order submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not process order")
	}
}
