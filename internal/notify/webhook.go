// Package notify dispatches order confirmations to the notification channel.
// Delivery is best-effort by contract: the gateway makes one attempt after a
// durable order creation and only logs the outcome.
package notify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/cafesincuchara/ecommer/internal/domain/order"
)

var _ order.Notifier = (*Webhook)(nil)

// Webhook posts the confirmation payload to a configured HTTP endpoint.
// An empty URL disables dispatch entirely.
type Webhook struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// NewWebhook creates a Webhook dispatcher. When client is nil,
// http.DefaultClient is used.
func NewWebhook(url string, timeout time.Duration, client *http.Client) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{
		url:     url,
		client:  client,
		timeout: timeout,
	}
}

// Dispatch makes a single delivery attempt with a bounded timeout. The
// request is never retried; a non-2xx status is reported as an error for the
// caller to log.
func (w *Webhook) Dispatch(ctx context.Context, n order.Notification) error {
	if w.url == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(encodePayload(n)))
	if err != nil {
		return errors.Wrap(err, "build notification request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send notification")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// encodePayload builds the confirmation JSON. Field names follow the
// notification channel's contract; amounts travel as strings.
func encodePayload(n order.Notification) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("orderId", func(e *jx.Encoder) { e.Str(n.OrderID) })
		e.Field("customerEmail", func(e *jx.Encoder) { e.Str(n.CustomerEmail) })
		e.Field("customerName", func(e *jx.Encoder) { e.Str(n.CustomerName) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range n.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product_id", func(e *jx.Encoder) { e.Str(item.ProductID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
						e.Field("price", func(e *jx.Encoder) { e.Str(item.UnitPrice.StringFixed(2)) })
					})
				}
			})
		})
		e.Field("totalAmount", func(e *jx.Encoder) { e.Str(n.TotalAmount.StringFixed(2)) })
		e.Field("shippingAddress", func(e *jx.Encoder) { e.Str(n.ShippingAddress) })
		e.Field("notes", func(e *jx.Encoder) { e.Str(n.Notes) })
	})
	return e.Bytes()
}
