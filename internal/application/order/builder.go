package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared/fieldpath"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
	"github.com/erp/supplierorders/internal/infrastructure/telemetry"
)

// Messages emitted by the builder
const (
	MsgAccountRequired   = "Account number is required."
	MsgBranchRequired    = "Branch/warehouse identifier is required."
	MsgNoLineItems       = "No valid line items found on the current order."
	MsgUnparseableDate   = "Unable to parse requested delivery date; leaving blank."
	MsgSRSContactName    = "SRS recommends providing a contact name."
	MsgSRSContactPhone   = "SRS recommends providing a contact phone."
	msgUnknownSupplier   = "Supplier %q not recognized, defaulting to ABC."
	msgLineMissingFields = "Line %d: missing SKU or quantity"
)

// requiredStringFields lists, in report order, the fields a target may mark
// as required.
var requiredStringFields = []struct {
	key        string
	defaultMsg string
	value      func(*domain.UnifiedOrder) string
}{
	{domain.FieldAccountNumber, MsgAccountRequired, func(o *domain.UnifiedOrder) string { return o.AccountNumber }},
	{domain.FieldBranchID, MsgBranchRequired, func(o *domain.UnifiedOrder) string { return o.BranchID }},
	{domain.FieldSellingBranchID, "Selling branch is required.", func(o *domain.UnifiedOrder) string { return o.SellingBranchID }},
	{domain.FieldJobName, "Job name is required.", func(o *domain.UnifiedOrder) string { return o.JobName }},
	{domain.FieldJobNumber, "Job number is required.", func(o *domain.UnifiedOrder) string { return o.JobNumber }},
	{domain.FieldPONumber, "PO number is required.", func(o *domain.UnifiedOrder) string { return o.PONumber }},
	{domain.FieldRequestedDate, "Requested delivery date is required.", func(o *domain.UnifiedOrder) string { return o.RequestedDate }},
}

// BuildResult is the outcome of assembling a unified order. Order is nil
// whenever Errors is non-empty.
type BuildResult struct {
	Order    *domain.UnifiedOrder `json:"order"`
	Errors   []string             `json:"errors"`
	Warnings []string             `json:"warnings"`
}

// OK reports whether the order can be compiled
func (r BuildResult) OK() bool {
	return r.Order != nil && len(r.Errors) == 0
}

// Builder assembles unified orders from loosely-typed raw sources
type Builder struct {
	catalog domain.TargetCatalog
	now     func() time.Time
	newID   func() string
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithClock sets the clock used to stamp PreparedAt
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithIDGenerator sets the generator used for missing request ids
func WithIDGenerator(gen func() string) BuilderOption {
	return func(b *Builder) {
		b.newID = gen
	}
}

// NewBuilder creates a Builder reading per-target rules from catalog
func NewBuilder(catalog domain.TargetCatalog, opts ...BuilderOption) *Builder {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	b := &Builder{
		catalog: catalog,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build resolves every canonical field from sources, earliest source first,
// and applies the target's required-field policy. Malformed input never
// panics; it surfaces as errors or warnings on the result.
func (b *Builder) Build(ctx context.Context, sources ...any) BuildResult {
	_, span := telemetry.StartServiceSpan(ctx, "order", "build",
		telemetry.SpanAttrSourceCount, len(sources))
	defer span.End()

	result := BuildResult{Errors: []string{}, Warnings: []string{}}

	target := b.resolveTarget(sources, &result)
	cfg := b.catalog.Lookup(target)
	r := resolver{cfg: cfg, sources: sources}

	o := &domain.UnifiedOrder{
		Target:            target,
		AccountNumber:     r.str(domain.FieldAccountNumber),
		BranchID:          r.str(domain.FieldBranchID),
		SellingBranchID:   r.str(domain.FieldSellingBranchID),
		JobName:           r.str(domain.FieldJobName),
		JobNumber:         r.str(domain.FieldJobNumber),
		PONumber:          r.str(domain.FieldPONumber),
		PONote:            r.str(domain.FieldPONote),
		TimeWindow:        domain.ParseTimeWindow(r.str(domain.FieldTimeWindow)),
		ExactFrom:         normalize.TimeOfDay(r.pick(domain.FieldExactFrom, nil)),
		ExactTo:           normalize.TimeOfDay(r.pick(domain.FieldExactTo, nil)),
		FulfillmentMethod: domain.ParseFulfillmentMethod(r.str(domain.FieldFulfillmentMethod)),
		ShipTo:            r.shipTo(),
		Contact:           r.contact(),
		Notes:             r.str(domain.FieldNotes),
		CheckAvailability: normalize.Bool(r.pick(domain.FieldCheckAvailability, nil), true),
		HoldOrder:         normalize.Bool(r.pick(domain.FieldHoldOrder, nil), false),
		Payment:           resolvePayment(sources),
		RequestID:         r.str(domain.FieldRequestID),
		PreparedAt:        b.now().UTC(),
	}

	rawDate := r.pick(domain.FieldRequestedDate, nil)
	o.RequestedDate = normalize.Date(rawDate)
	if fieldpath.IsPresent(rawDate) && o.RequestedDate == "" {
		result.Warnings = append(result.Warnings, MsgUnparseableDate)
	}

	if strings.TrimSpace(o.RequestID) == "" {
		o.RequestID = b.newID()
	}

	for _, field := range requiredStringFields {
		if cfg.IsRequired(field.key) && !normalize.NonEmpty(field.value(o)) {
			result.Errors = append(result.Errors, cfg.Message(field.key, field.defaultMsg))
		}
	}

	lines, dropped := resolveLineItems(sources)
	o.LineItems = lines
	for _, idx := range dropped {
		telemetry.AddEvent(span, "line_dropped", telemetry.SpanAttrLineIndex, idx)
		result.Warnings = append(result.Warnings, fmt.Sprintf(msgLineMissingFields, idx+1))
	}
	if len(lines) == 0 {
		result.Errors = append(result.Errors, MsgNoLineItems)
	}

	if target == domain.TargetSRS {
		if !normalize.NonEmpty(o.Contact.Name) {
			result.Warnings = append(result.Warnings, MsgSRSContactName)
		}
		if !normalize.NonEmpty(o.Contact.Phone) {
			result.Warnings = append(result.Warnings, MsgSRSContactPhone)
		}
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrTarget, target.String(),
		telemetry.SpanAttrLineCount, len(lines),
		telemetry.SpanAttrErrorCount, len(result.Errors),
		telemetry.SpanAttrWarningCount, len(result.Warnings),
	)

	if len(result.Errors) == 0 {
		result.Order = o
	}
	return result
}

func (b *Builder) resolveTarget(sources []any, result *BuildResult) domain.Target {
	v, present := fieldpath.First(targetPaths, sources...)
	if !present {
		return domain.DefaultTarget
	}
	raw, ok := fieldpath.AsString(v)
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf(msgUnknownSupplier, renderValue(v)))
		return domain.DefaultTarget
	}
	target, ok := domain.ParseTarget(raw)
	if ok && (len(b.catalog) == 0 || b.catalog.Supports(target)) {
		return target
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf(msgUnknownSupplier, target.String()))
	return domain.DefaultTarget
}

// renderValue shows a non-scalar value in warnings
func renderValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// resolver applies a target's path overrides and default values
type resolver struct {
	cfg     domain.TargetConfig
	sources []any
}

func (r resolver) pick(key string, def any) any {
	if v, ok := fieldpath.First(r.cfg.Paths(key, fieldPaths[key]), r.sources...); ok {
		return v
	}
	if v, ok := r.cfg.DefaultValues[key]; ok && v != nil {
		return v
	}
	return def
}

func (r resolver) str(key string) string {
	return r.strOr(key, "")
}

// strOr renders the resolved value, falling back to def when it is absent
// or does not render as a string.
func (r resolver) strOr(key, def string) string {
	if s, ok := fieldpath.AsString(r.pick(key, nil)); ok {
		return s
	}
	return def
}

func (r resolver) shipTo() domain.ShipTo {
	return domain.ShipTo{
		Name:       r.str(domain.FieldShipToName),
		Address1:   r.str(domain.FieldShipToAddress1),
		Address2:   r.str(domain.FieldShipToAddress2),
		Address3:   r.str(domain.FieldShipToAddress3),
		City:       r.str(domain.FieldShipToCity),
		State:      r.str(domain.FieldShipToState),
		PostalCode: r.str(domain.FieldShipToPostalCode),
		Country:    r.strOr(domain.FieldShipToCountry, domain.DefaultCountry),
	}
}

func (r resolver) contact() domain.Contact {
	return domain.Contact{
		Name:     r.str(domain.FieldContactName),
		Phone:    r.str(domain.FieldContactPhone),
		Email:    r.str(domain.FieldContactEmail),
		CCEmails: normalize.StringSlice(r.pick(domain.FieldContactCCEmails, nil)),
		Address: domain.ContactAddress{
			Address1:   r.str(domain.FieldContactAddress1),
			City:       r.str(domain.FieldContactCity),
			State:      r.str(domain.FieldContactState),
			PostalCode: r.str(domain.FieldContactPostalCode),
		},
	}
}

func resolvePayment(sources []any) *domain.Payment {
	raw, ok := fieldpath.First(paymentPaths, sources...)
	if !ok {
		return nil
	}
	obj, ok := fieldpath.AsObject(raw)
	if !ok {
		return nil
	}
	src := []any{obj}
	p := &domain.Payment{
		ExpMM:      fieldpath.ResolveString([]string{"expMM", "ExpMM", "exp_mm"}, src, ""),
		ExpYY:      fieldpath.ResolveString([]string{"expYY", "ExpYY", "exp_yy"}, src, ""),
		Type:       fieldpath.ResolveString([]string{"type", "Type", "cardType"}, src, ""),
		Token:      fieldpath.ResolveString([]string{"token", "Token", "LowValueToken"}, src, ""),
		BillingZip: fieldpath.ResolveString([]string{"billingZip", "billing_zip", "AVSZIPCode"}, src, ""),
		Name:       fieldpath.ResolveString([]string{"name", "Name", "FullName"}, src, ""),
	}
	if *p == (domain.Payment{}) {
		return nil
	}
	return p
}

// resolveLineItems reads the first line container found: the primary
// source's containers first, then each secondary source in order. It also
// returns the zero-based indexes of entries it could not use.
func resolveLineItems(sources []any) ([]domain.LineItem, []int) {
	var raw any
	if len(sources) > 0 {
		raw, _ = fieldpath.First(primaryLinePaths, sources[0])
	}
	if raw == nil {
		for _, src := range tail(sources) {
			if v, ok := fieldpath.First(secondaryLinePaths, src); ok {
				raw = v
				break
			}
		}
	}

	items := asList(raw)
	lines := make([]domain.LineItem, 0, len(items))
	var dropped []int
	for idx, item := range items {
		line, ok := parseLineItem(item)
		if !ok {
			dropped = append(dropped, idx)
			continue
		}
		lines = append(lines, line)
	}
	return lines, dropped
}

func parseLineItem(item any) (domain.LineItem, bool) {
	src := []any{item}

	qty, qtyOK := normalize.Decimal(fieldpath.Resolve(linePaths.qty, src, nil))
	line := domain.LineItem{
		ItemCode:      strings.TrimSpace(fieldpath.ResolveString(linePaths.itemCode, src, "")),
		Qty:           qty,
		UOM:           domain.CanonicalUOM(fieldpath.ResolveString(linePaths.uom, src, "")),
		Desc:          fieldpath.ResolveString(linePaths.desc, src, ""),
		Option:        fieldpath.ResolveString(linePaths.option, src, ""),
		LineNote:      fieldpath.ResolveString(linePaths.lineNote, src, ""),
		ProductID:     normalize.IntOrZero(fieldpath.Resolve(linePaths.productID, src, nil)),
		ProductNumber: fieldpath.ResolveString(linePaths.productNumber, src, ""),
	}
	if !qtyOK || !line.IsValid() {
		return domain.LineItem{}, false
	}
	if price, ok := normalize.Decimal(fieldpath.Resolve(linePaths.unitPrice, src, nil)); ok {
		line.UnitPrice = &price
	}
	return line, true
}

func tail(sources []any) []any {
	if len(sources) < 2 {
		return nil
	}
	return sources[1:]
}

// asList treats a single object as a one-element list
func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case map[string]any:
		return []any{val}
	default:
		return nil
	}
}
