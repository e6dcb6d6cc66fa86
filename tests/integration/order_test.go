//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"testing"

	"golang.org/x/sync/errgroup"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func validOrder() placeOrderRequest {
	return placeOrderRequest{
		Name:    "Ana Morales",
		Email:   "ana@example.com",
		Phone:   "+52 55 1234 5678",
		Address: "Av. Insurgentes Sur 123, CDMX",
	}
}

func TestPlaceOrder_EmptyCartAndBlankFields(t *testing.T) {
	shopper := newShopper(t)

	resp := do(t, shopper, http.MethodPost, "/api/orders", placeOrderRequest{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if len(body.Details) < 3 {
		t.Fatalf("expected all violations reported together, got %v", body.Details)
	}

	want := map[string]bool{
		"customer name is required":    false,
		"email is required":            false,
		"shipping address is required": false,
		"cart is empty":                false,
	}
	for _, d := range body.Details {
		if _, ok := want[d]; ok {
			want[d] = true
		}
	}
	for msg, seen := range want {
		if !seen {
			t.Errorf("missing violation %q in %v", msg, body.Details)
		}
	}
}

func TestPlaceOrder_InvalidEmail(t *testing.T) {
	shopper := newShopper(t)
	addToCart(t, shopper, "filtros-v60", 1)

	req := validOrder()
	req.Email = "not-an-email"
	resp := do(t, shopper, http.MethodPost, "/api/orders", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	var found bool
	for _, d := range body.Details {
		if d == "email is not valid" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected email violation, got %v", body.Details)
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	shopper := newShopper(t)
	addToCart(t, shopper, "cafe-descafeinado-250", 2) // 2 x 9.20

	resp := do(t, shopper, http.MethodPost, "/api/orders", validOrder())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	placed := decodeJSON[orderResponse](t, resp)
	if !uuidPattern.MatchString(placed.OrderID) {
		t.Errorf("order ID %q is not a valid UUID", placed.OrderID)
	}
	if placed.TotalAmount != "18.40" {
		t.Errorf("total: got %q, want %q", placed.TotalAmount, "18.40")
	}

	// Cart is cleared only after durable success.
	if cart := getCart(t, shopper); len(cart.Items) != 0 {
		t.Errorf("expected cart cleared after order, got %d lines", len(cart.Items))
	}

	// Stock was decremented server-side.
	pr := doGet(t, shopper, "/api/products/cafe-descafeinado-250")
	defer pr.Body.Close()
	p := decodeJSON[productResponse](t, pr)
	if p.Stock != 20 {
		t.Errorf("stock after order: got %d, want 20", p.Stock)
	}
}

// Two shoppers race for the last units of a product. Exactly one order must
// be created; the loser gets a stock conflict and keeps their cart.
func TestPlaceOrder_ConcurrentLastUnits(t *testing.T) {
	// molinillo-manual has 8 units; both shoppers want all of them.
	shoppers := []*http.Client{newShopper(t), newShopper(t)}
	for _, s := range shoppers {
		addToCart(t, s, "molinillo-manual", 8)
	}

	statuses := make([]int, len(shoppers))
	var g errgroup.Group
	for i, s := range shoppers {
		g.Go(func() error {
			resp := do(t, s, http.MethodPost, "/api/orders", validOrder())
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	var created, conflicted int
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	if created != 1 || conflicted != 1 {
		t.Fatalf("expected exactly one 201 and one 409, got %v", statuses)
	}

	// The losing shopper's cart survives for a retry.
	for i, code := range statuses {
		if code != http.StatusConflict {
			continue
		}
		if cart := getCart(t, shoppers[i]); len(cart.Items) != 1 {
			t.Errorf("loser's cart: expected 1 line, got %d", len(cart.Items))
		}
	}

	pr := doGet(t, shoppers[0], "/api/products/molinillo-manual")
	defer pr.Body.Close()
	if p := decodeJSON[productResponse](t, pr); p.Stock != 0 {
		t.Errorf("stock after race: got %d, want 0", p.Stock)
	}
}
