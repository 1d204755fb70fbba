// Package abcvalidate repairs and checks ABC Supply order payloads before
// submission. It works on the decoded JSON array, never on typed structs, so
// it can also be run against payloads produced elsewhere.
package abcvalidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/erp/supplierorders/internal/domain/shared/fieldpath"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

// Options carries per-call inputs
type Options struct {
	// Now anchors fallback dates. Zero means time.Now().
	Now time.Time
}

// Report lists what happened to one order
type Report struct {
	Index     int      `json:"index" yaml:"index"`
	RequestID *string  `json:"requestId" yaml:"requestId"`
	Fixes     []string `json:"fixes" yaml:"fixes"`
	Warnings  []string `json:"warnings" yaml:"warnings"`
	Errors    []string `json:"errors" yaml:"errors"`
}

// HasErrors reports whether the order is still invalid after repair
func (r Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Result is the repaired payload with one report per order
type Result struct {
	Payload   []any    `json:"payload" yaml:"payload"`
	Report    []Report `json:"report" yaml:"report"`
	HasErrors bool     `json:"hasErrors" yaml:"hasErrors"`
}

// FixCount totals fixes across every report
func (r Result) FixCount() int {
	n := 0
	for _, rep := range r.Report {
		n += len(rep.Fixes)
	}
	return n
}

// WarningCount totals warnings across every report
func (r Result) WarningCount() int {
	n := 0
	for _, rep := range r.Report {
		n += len(rep.Warnings)
	}
	return n
}

// ErrorCount totals errors across every report
func (r Result) ErrorCount() int {
	n := 0
	for _, rep := range r.Report {
		n += len(rep.Errors)
	}
	return n
}

// Validator applies a Config to ABC payloads. It is safe for concurrent use.
type Validator struct {
	cfg *Config
}

// New creates a Validator. A nil cfg uses the embedded rules.
func New(cfg *Config) (*Validator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg}, nil
}

// Config returns the rules in use
func (v *Validator) Config() *Config {
	return v.cfg
}

// Validate runs the embedded rules over payload
func Validate(payload []any, opts Options) Result {
	v, _ := New(nil)
	return v.Validate(payload, opts)
}

// Validate clones payload, repairs the clone and reports per order.
// Entries that are not JSON objects are dropped. The caller's payload is
// never modified.
func (v *Validator) Validate(payload []any, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	orders := make([]any, 0, len(payload))
	for _, entry := range payload {
		if obj, ok := entry.(map[string]any); ok {
			orders = append(orders, fieldpath.Clone(obj))
		}
	}

	result := Result{
		Payload: orders,
		Report:  make([]Report, 0, len(orders)),
	}
	for i, entry := range orders {
		rep := v.normalizeOrder(entry.(map[string]any), i, now)
		if rep.HasErrors() {
			result.HasErrors = true
		}
		result.Report = append(result.Report, rep)
	}
	return result
}

// ValidateJSON decodes a JSON array and validates it. Numbers are kept as
// json.Number so re-encoding preserves them exactly.
func (v *Validator) ValidateJSON(data []byte, opts Options) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload []any
	if err := dec.Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("abcvalidate: payload must be a JSON array: %w", err)
	}
	return v.Validate(payload, opts), nil
}

func (v *Validator) normalizeOrder(o map[string]any, index int, now time.Time) Report {
	rep := Report{
		Index:    index,
		Fixes:    []string{},
		Warnings: []string{},
		Errors:   []string{},
	}
	if id := normalize.String(o["requestId"]); id != "" {
		rep.RequestID = &id
	}

	v.ensurePurchaseOrder(o, &rep)
	v.ensureDeliveryDate(o, &rep, now)
	v.ensureLines(o, &rep)
	v.ensureShipTo(o, &rep)
	v.ensureContacts(o, &rep)
	return rep
}

func (v *Validator) ensurePurchaseOrder(o map[string]any, rep *Report) {
	rules := v.cfg.PurchaseOrder
	maxLength := rules.MaxLength
	if maxLength <= 0 {
		maxLength = defaultPOMaxLength
	}

	raw, isString := o["purchaseOrder"].(string)
	current := strings.TrimSpace(raw)

	switch {
	case current == "" && rules.Required:
		base := rules.FallbackSequence
		if id := normalize.String(o["requestId"]); id != "" {
			base = sanitizeForID(id)
		}
		o["purchaseOrder"] = strings.TrimSpace(normalize.Truncate(rules.DefaultPrefix+base, maxLength))
		rep.Fixes = append(rep.Fixes, fmt.Sprintf("purchaseOrder missing → set to fallback %q", o["purchaseOrder"]))
	case normalize.RuneLen(current) > maxLength:
		o["purchaseOrder"] = strings.TrimSpace(normalize.Truncate(current, maxLength))
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("purchaseOrder truncated to %d chars", maxLength))
	case isString && current != "" && current != raw:
		o["purchaseOrder"] = current
		rep.Fixes = append(rep.Fixes, "purchaseOrder trimmed")
	}

	if rules.Required && fieldpath.IsBlank(o["purchaseOrder"]) {
		rep.Errors = append(rep.Errors, "purchaseOrder is required but missing")
	}
}

func (v *Validator) ensureDeliveryDate(o map[string]any, rep *Report, now time.Time) {
	rule := v.cfg.Dates.DeliveryRequestedFor

	dates, ok := o["dates"].(map[string]any)
	if !ok {
		dates = map[string]any{}
		o["dates"] = dates
	}
	raw := dates["deliveryRequestedFor"]

	if normalized := normalizeDate(raw, rule.Format); normalized != "" {
		if s, _ := raw.(string); s != normalized {
			dates["deliveryRequestedFor"] = normalized
			rep.Fixes = append(rep.Fixes, "dates.deliveryRequestedFor normalized to ISO")
		}
		return
	}

	fallback := normalize.AddDays(now, rule.FallbackDaysFromToday)
	dates["deliveryRequestedFor"] = fallback
	rep.Warnings = append(rep.Warnings, fmt.Sprintf("dates.deliveryRequestedFor invalid → defaulted to %s", fallback))
}

func (v *Validator) ensureLines(o map[string]any, rep *Report) {
	lines, ok := o["lines"].([]any)
	if !ok {
		rep.Errors = append(rep.Errors, "lines must be an array")
		o["lines"] = []any{}
		return
	}

	rules := v.cfg.Lines
	if rules.MaxCount > 0 && len(lines) > rules.MaxCount {
		lines = lines[:rules.MaxCount]
		o["lines"] = lines
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("lines trimmed to first %d items", rules.MaxCount))
	}

	for i, entry := range lines {
		line, ok := entry.(map[string]any)
		if !ok {
			rep.Errors = append(rep.Errors, fmt.Sprintf("line[%d] is not an object", i))
			continue
		}

		if rules.IDType == IDTypeInteger {
			id, native, ok := coerceInteger(line["id"])
			switch {
			case !ok:
				rep.Errors = append(rep.Errors, fmt.Sprintf("line[%d].id must be an integer", i))
			case !native:
				line["id"] = id
				rep.Fixes = append(rep.Fixes, fmt.Sprintf("line[%d].id coerced to %d", i, id))
			}
		}

		if item, ok := line["itemNumber"].(string); ok {
			if trimmed := strings.TrimSpace(item); trimmed != item {
				line["itemNumber"] = trimmed
				rep.Fixes = append(rep.Fixes, fmt.Sprintf("line[%d].itemNumber trimmed", i))
			}
		}
	}
}

func (v *Validator) ensureShipTo(o map[string]any, rep *Report) {
	if !v.cfg.ShipTo.OmitEmptyAddress {
		return
	}
	shipTo, ok := o["shipTo"].(map[string]any)
	if !ok {
		return
	}
	address, ok := shipTo["address"].(map[string]any)
	if !ok {
		return
	}

	for _, value := range address {
		if !fieldpath.IsBlank(value) {
			return
		}
	}
	delete(shipTo, "address")
	rep.Fixes = append(rep.Fixes, "shipTo.address removed (all fields empty)")
}

func (v *Validator) ensureContacts(o map[string]any, rep *Report) {
	shipTo, ok := o["shipTo"].(map[string]any)
	if !ok {
		return
	}

	rules := v.cfg.Contacts
	contacts, ok := shipTo["contacts"].([]any)
	if !ok {
		contacts = []any{}
		shipTo["contacts"] = contacts
	}

	hasPreferred := len(contacts) > 0
	if rules.PreferredFunctionCode != "" {
		hasPreferred = false
		for _, entry := range contacts {
			contact, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if strings.ToUpper(normalize.String(contact["functionCode"])) == rules.PreferredFunctionCode {
				hasPreferred = true
				break
			}
		}
	}

	if hasPreferred || rules.Default == nil {
		return
	}
	shipTo["contacts"] = append(contacts, fieldpath.Clone(rules.Default))
	if rules.PreferredFunctionCode == "" {
		rep.Fixes = append(rep.Fixes, "shipTo.contacts appended default contact")
		return
	}
	rep.Fixes = append(rep.Fixes, fmt.Sprintf("shipTo.contacts appended default %s contact", rules.PreferredFunctionCode))
}

// normalizeDate returns value as YYYY-MM-DD, or "" when it cannot be read
func normalizeDate(value any, format string) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if format == ISODateFormat && normalize.IsISODate(trimmed) {
		return trimmed
	}
	return normalize.Date(trimmed)
}

// coerceInteger reads an integer line id. native is true when value already
// is an integer number and needs no rewrite.
func coerceInteger(value any) (id int64, native bool, ok bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false, false
		}
		return int64(v), true, true
	case int:
		return int64(v), true, true
	case int64:
		return v, true, true
	case json.Number:
		n, ok := normalize.Int(v)
		return n, ok, ok
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false, false
		}
		n, ok := normalize.Int(trimmed)
		return n, false, ok
	default:
		return 0, false, false
	}
}

// sanitizeForID keeps ASCII letters and digits, at most 12, or "PO"
func sanitizeForID(value string) string {
	var b strings.Builder
	for _, r := range value {
		if b.Len() == 12 {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "PO"
	}
	return b.String()
}
