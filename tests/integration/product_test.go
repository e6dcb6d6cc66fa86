//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, newShopper(t), "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != 7 {
		t.Fatalf("expected 7 products, got %d", len(products))
	}

	for _, p := range products {
		if p.ID == "" {
			t.Error("product with empty id")
		}
		if p.Name == "" {
			t.Errorf("product %s: empty name", p.ID)
		}
		if p.Price == "" {
			t.Errorf("product %s: empty price", p.ID)
		}
		if p.Stock < 0 {
			t.Errorf("product %s: negative stock %d", p.ID, p.Stock)
		}
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, newShopper(t), "/api/products/filtros-v60")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p := decodeJSON[productResponse](t, resp)
	if p.ID != "filtros-v60" {
		t.Errorf("id: got %q, want %q", p.ID, "filtros-v60")
	}
	if p.Name != "Filtros V60 x100" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Price != "6.75" {
		t.Errorf("price: got %q, want %q", p.Price, "6.75")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, newShopper(t), "/api/products/no-such-product")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Message == "" {
		t.Error("error message is empty")
	}
}
