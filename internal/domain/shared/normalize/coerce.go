package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/supplierorders/internal/domain/shared/fieldpath"
)

// Numbers are limited to the finite float64 range. Larger magnitudes are
// non-finite; smaller ones underflow to zero.
const (
	maxOrder = 308
	minOrder = -324
)

var (
	maxFinite = decimal.NewFromFloat(math.MaxFloat64)
	minInt64  = decimal.NewFromInt(math.MinInt64)
	maxInt64  = decimal.NewFromInt(math.MaxInt64)

	truthy = map[string]bool{"yes": true, "true": true, "1": true, "y": true}
	falsy  = map[string]bool{"no": true, "false": true, "0": true, "n": true}
)

// Bool coerces v to a boolean. Native booleans pass through; yes/true/1/y and
// no/false/0/n (any case) are recognized; anything else yields def.
func Bool(v any, def bool) bool {
	if v == nil {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	s, ok := fieldpath.AsString(v)
	if !ok {
		return def
	}
	s = Fold(strings.TrimSpace(s))
	if truthy[s] {
		return true
	}
	if falsy[s] {
		return false
	}
	return def
}

// Decimal coerces a numeric value. Numbers, json.Number and numeric strings
// are accepted; objects of the form {value: x} are unwrapped once.
func Decimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return bounded(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		return Decimal(float64(val))
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt(int64(val)), true
	case json.Number:
		return parseDecimal(val.String())
	case string:
		return parseDecimal(val)
	case map[string]any:
		if inner, ok := val["value"]; ok {
			if _, nested := inner.(map[string]any); nested {
				return decimal.Zero, false
			}
			return Decimal(inner)
		}
		return decimal.Zero, false
	default:
		return decimal.Zero, false
	}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return bounded(d)
}

// bounded checks d's order of magnitude from its digit count and exponent,
// so values like "1e30000000" are rejected without being expanded.
func bounded(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	order := int64(d.NumDigits()) + int64(d.Exponent()) - 1
	switch {
	case order > maxOrder:
		return decimal.Zero, false
	case order < minOrder:
		return decimal.Zero, true
	case order == maxOrder && d.Abs().GreaterThan(maxFinite):
		return decimal.Zero, false
	}
	return d, true
}

// Int coerces v to an integer. Fractional numbers and values outside the
// int64 range are rejected.
func Int(v any) (int64, bool) {
	d, ok := Decimal(v)
	if !ok || !d.IsInteger() || d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

// IntOrZero coerces v to an integer, yielding 0 for anything unusable.
func IntOrZero(v any) int64 {
	n, _ := Int(v)
	return n
}

// String renders a scalar value as a string; objects and arrays yield "".
func String(v any) string {
	s, _ := fieldpath.AsString(v)
	return s
}

// TimeOfDay reads an HH:MM value. Strings pass through; time-picker objects
// of the form {time: "HH:MM"} are unwrapped.
func TimeOfDay(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if t, ok := val["time"].(string); ok {
			return t
		}
	}
	return ""
}

// StringSlice reads a list of strings. A single string becomes a one-element
// list; non-string entries are rendered when scalar and skipped otherwise.
func StringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := fieldpath.AsString(item); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(val) == "" {
			return []string{}
		}
		return []string{val}
	default:
		return []string{}
	}
}

// FormatInt renders n in base 10.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
