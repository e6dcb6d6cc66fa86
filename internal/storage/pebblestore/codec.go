package pebblestore

import (
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
)

// encodeLines serializes the line sequence as a JSON array, order preserved.
// Prices travel as strings so no precision is lost in transit.
func encodeLines(lines []cart.Line) []byte {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, l := range lines {
			e.Obj(func(e *jx.Encoder) {
				e.Field("product_id", func(e *jx.Encoder) { e.Str(l.ProductID) })
				e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
				e.Field("unit_price", func(e *jx.Encoder) { e.Str(l.UnitPrice.String()) })
				e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
				e.Field("stock_ceiling", func(e *jx.Encoder) { e.Int(l.StockCeiling) })
				e.Field("image_url", func(e *jx.Encoder) { e.Str(l.ImageURL) })
			})
		}
	})
	return e.Bytes()
}

// decodeLines parses a serialized line sequence. Any malformed input returns
// an error; the caller treats that as an empty cart.
func decodeLines(data []byte) ([]cart.Line, error) {
	var lines []cart.Line
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		var l cart.Line
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "product_id":
				l.ProductID, err = d.Str()
			case "name":
				l.Name, err = d.Str()
			case "unit_price":
				var raw string
				if raw, err = d.Str(); err == nil {
					l.UnitPrice, err = decimal.NewFromString(raw)
				}
			case "quantity":
				l.Quantity, err = d.Int()
			case "stock_ceiling":
				l.StockCeiling, err = d.Int()
			case "image_url":
				l.ImageURL, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		lines = append(lines, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
