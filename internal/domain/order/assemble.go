package order

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
)

// emailPattern accepts the usual local@domain.tld shape without attempting
// full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input holds the shopper-entered checkout fields, as typed. Assembly trims
// whitespace; phone and notes are optional.
type Input struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// AssembleDraft validates the cart lines and checkout fields and builds the
// immutable draft. Validation is exhaustive: every violated rule lands in
// the returned ValidationErrors, and no draft is produced if any rule fails.
// The total is re-derived from the lines and rounded to two decimal places,
// never taken from a previously displayed value.
func AssembleDraft(lines []cart.Line, in Input) (*Draft, error) {
	var errs ValidationErrors

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)

	if name == "" {
		errs = append(errs, "customer name is required")
	}
	switch {
	case email == "":
		errs = append(errs, "email is required")
	case !emailPattern.MatchString(email):
		errs = append(errs, "email is not valid")
	}
	if address == "" {
		errs = append(errs, "shipping address is required")
	}
	if len(lines) == 0 {
		errs = append(errs, "cart is empty")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			errs = append(errs, fmt.Sprintf("invalid quantity for product %s", l.ProductID))
		}
		if !l.UnitPrice.IsPositive() {
			errs = append(errs, fmt.Sprintf("invalid price for product %s", l.ProductID))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	items := make([]Item, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		items[i] = Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Round(2),
		}
		total = total.Add(l.Amount())
	}

	return &Draft{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   strings.TrimSpace(in.Phone),
		ShippingAddress: address,
		Notes:           strings.TrimSpace(in.Notes),
		Items:           items,
		TotalAmount:     total.Round(2),
	}, nil
}

// notification builds the confirmation payload for a created order.
func (d *Draft) notification(orderID string) Notification {
	return Notification{
		OrderID:         orderID,
		CustomerEmail:   d.CustomerEmail,
		CustomerName:    d.CustomerName,
		Items:           d.Items,
		TotalAmount:     d.TotalAmount,
		ShippingAddress: d.ShippingAddress,
		Notes:           d.Notes,
	}
}
