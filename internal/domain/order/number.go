package order

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number renders d as a JSON number with its exact digits
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func numberPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := Number(*d)
	return &n
}

// MarshalJSON renders Qty and UnitPrice as JSON numbers rather than the
// quoted strings decimal emits by default.
func (l LineItem) MarshalJSON() ([]byte, error) {
	type plain LineItem
	return json.Marshal(struct {
		plain
		Qty       json.Number  `json:"qty"`
		UnitPrice *json.Number `json:"unitPrice,omitempty"`
	}{
		plain:     plain(l),
		Qty:       Number(l.Qty),
		UnitPrice: numberPtr(l.UnitPrice),
	})
}

// MarshalJSON renders Qty and Price as JSON numbers.
func (d DraftLine) MarshalJSON() ([]byte, error) {
	type plain DraftLine
	return json.Marshal(struct {
		plain
		Qty   json.Number  `json:"qty"`
		Price *json.Number `json:"price,omitempty"`
	}{
		plain: plain(d),
		Qty:   Number(d.Qty),
		Price: numberPtr(d.Price),
	})
}
