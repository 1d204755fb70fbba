package order

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/supplierorders/internal/domain/shared/fieldpath"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

// DraftLine is a line typed into the order entry grid
type DraftLine struct {
	SKU   string           `json:"sku"`
	UOM   string           `json:"uom"`
	Qty   decimal.Decimal  `json:"qty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ParseLineItems reads draft lines serialized as a JSON array, or as a JSON
// string that itself contains the array (drafts are sometimes stored
// double-encoded). Invalid entries are reported per item and skipped.
func ParseLineItems(input string) ([]DraftLine, []string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return []DraftLine{}, []string{"No payload data available"}
	}

	var first any
	if err := json.Unmarshal([]byte(trimmed), &first); err != nil {
		return []DraftLine{}, []string{fmt.Sprintf("Failed to parse payload: %v", err)}
	}
	data := first
	if s, ok := first.(string); ok {
		if err := json.Unmarshal([]byte(s), &data); err != nil {
			return []DraftLine{}, []string{fmt.Sprintf("Failed to parse payload: %v", err)}
		}
	}

	items, ok := fieldpath.AsArray(data)
	if !ok {
		return []DraftLine{}, []string{"Failed to parse payload: Expected an array of line items"}
	}

	lines := make([]DraftLine, 0, len(items))
	var errs []string
	for idx, raw := range items {
		where := fmt.Sprintf("item[%d]", idx)
		item, _ := fieldpath.AsObject(raw)

		sku := strings.TrimSpace(normalize.String(item["sku"]))
		uom := CanonicalUOM(normalize.String(item["uom"]))
		qty, qtyOK := normalize.Decimal(item["qty"])

		valid := true
		if sku == "" {
			errs = append(errs, where+": sku is required")
			valid = false
		}
		if !qtyOK || !qty.IsPositive() {
			errs = append(errs, where+": qty must be > 0")
			valid = false
		}
		if !valid {
			continue
		}

		line := DraftLine{SKU: sku, UOM: uom, Qty: qty}
		if price, ok := normalize.Decimal(item["price"]); ok {
			line.Price = &price
		}
		lines = append(lines, line)
	}
	return lines, errs
}
