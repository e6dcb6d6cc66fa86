//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func addToCart(t *testing.T, client *http.Client, productID string, qty int) cartResponse {
	t.Helper()

	resp := do(t, client, http.MethodPost, "/api/cart/items", addItemRequest{
		ProductID: productID,
		Quantity:  qty,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add to cart: expected 200, got %d", resp.StatusCode)
	}
	return decodeJSON[cartResponse](t, resp)
}

func getCart(t *testing.T, client *http.Client) cartResponse {
	t.Helper()

	resp := doGet(t, client, "/api/cart")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get cart: expected 200, got %d", resp.StatusCode)
	}
	return decodeJSON[cartResponse](t, resp)
}

func TestCart_AddAndTotal(t *testing.T) {
	shopper := newShopper(t)

	cart := addToCart(t, shopper, "cafe-organico-250", 2) // 2 x 8.50
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", cart.Items[0].Quantity)
	}
	if cart.Total != "17.00" {
		t.Errorf("total: got %q, want %q", cart.Total, "17.00")
	}

	cart = addToCart(t, shopper, "filtros-v60", 1) // + 6.75
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	if cart.Total != "23.75" {
		t.Errorf("total: got %q, want %q", cart.Total, "23.75")
	}
}

func TestCart_ClampsToStockCeiling(t *testing.T) {
	shopper := newShopper(t)

	// prensa-francesa has 12 units in stock.
	cart := addToCart(t, shopper, "prensa-francesa", 100)
	if got := cart.Items[0].Quantity; got != 12 {
		t.Errorf("quantity: got %d, want 12", got)
	}

	// Re-adding must not push past the ceiling.
	cart = addToCart(t, shopper, "prensa-francesa", 5)
	if got := cart.Items[0].Quantity; got != 12 {
		t.Errorf("quantity after re-add: got %d, want 12", got)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	shopper := newShopper(t)
	addToCart(t, shopper, "taza-barro", 1)

	resp := do(t, shopper, http.MethodPut, "/api/cart/items/taza-barro", updateItemRequest{Quantity: 3})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	cart := decodeJSON[cartResponse](t, resp)
	if cart.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", cart.Items[0].Quantity)
	}
	if cart.Total != "33.00" {
		t.Errorf("total: got %q, want %q", cart.Total, "33.00")
	}
}

func TestCart_ZeroQuantityRemovesLine(t *testing.T) {
	shopper := newShopper(t)
	addToCart(t, shopper, "taza-barro", 2)

	resp := do(t, shopper, http.MethodPut, "/api/cart/items/taza-barro", updateItemRequest{Quantity: 0})
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Items))
	}
	if cart.Total != "0.00" {
		t.Errorf("total: got %q, want %q", cart.Total, "0.00")
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	shopper := newShopper(t)
	addToCart(t, shopper, "cafe-organico-250", 1)
	addToCart(t, shopper, "filtros-v60", 1)

	resp := do(t, shopper, http.MethodDelete, "/api/cart/items/cafe-organico-250", nil)
	cart := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "filtros-v60" {
		t.Fatalf("unexpected cart after remove: %+v", cart.Items)
	}

	resp = do(t, shopper, http.MethodDelete, "/api/cart", nil)
	cart = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(cart.Items))
	}
}

func TestCart_UnknownProduct(t *testing.T) {
	shopper := newShopper(t)

	resp := do(t, shopper, http.MethodPost, "/api/cart/items", addItemRequest{
		ProductID: "no-such-product",
		Quantity:  1,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	alice := newShopper(t)
	bob := newShopper(t)

	addToCart(t, alice, "cafe-organico-250", 1)

	if cart := getCart(t, bob); len(cart.Items) != 0 {
		t.Fatalf("expected empty cart for second shopper, got %d lines", len(cart.Items))
	}
	if cart := getCart(t, alice); len(cart.Items) != 1 {
		t.Fatalf("expected 1 line for first shopper, got %d lines", len(cart.Items))
	}
}

func TestCart_SessionCookieIssued(t *testing.T) {
	resp := doGet(t, newShopper(t), "/api/cart")
	defer resp.Body.Close()

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "cart_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("cart_session cookie not set")
	}
}
