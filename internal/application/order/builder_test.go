package order

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	domain "github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/infrastructure/telemetry"
)

var testPreparedAt = time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC)

func newTestBuilder(catalog domain.TargetCatalog) *Builder {
	return NewBuilder(catalog,
		WithClock(func() time.Time { return testPreparedAt }),
		WithIDGenerator(func() string { return "generated-id" }),
	)
}

func decodeSource(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestBuild_MinimalABC(t *testing.T) {
	src := decodeSource(t, `{"supplier":"abc","accountNumber":"123","branchId":"595","lineItems":[{"sku":"9999","qty":2}]}`)

	result := newTestBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	o := result.Order
	assert.Equal(t, domain.TargetABC, o.Target)
	assert.Equal(t, "123", o.AccountNumber)
	assert.Equal(t, "595", o.BranchID)
	require.Len(t, o.LineItems, 1)
	assert.Equal(t, "9999", o.LineItems[0].ItemCode)
	assert.True(t, o.LineItems[0].Qty.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "EA", o.LineItems[0].UOM)

	assert.Equal(t, domain.TimeWindowAnytime, o.TimeWindow)
	assert.Equal(t, domain.FulfillmentDeliveryGround, o.FulfillmentMethod)
	assert.Equal(t, "USA", o.ShipTo.Country)
	assert.True(t, o.CheckAvailability)
	assert.False(t, o.HoldOrder)
	assert.Nil(t, o.Payment)
	assert.Equal(t, "generated-id", o.RequestID)
	assert.Equal(t, testPreparedAt, o.PreparedAt)
	assert.Equal(t, []string{}, o.Contact.CCEmails)
}

func TestBuild_UnknownSupplierDefaultsToABC(t *testing.T) {
	src := decodeSource(t, `{"supplier":"unknown-vendor","accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`)

	result := newTestBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Equal(t, domain.TargetABC, result.Order.Target)
	assert.Contains(t, result.Warnings, `Supplier "UNKNOWN-VENDOR" not recognized, defaulting to ABC.`)
}

func TestBuild_SupplierNotInCatalog(t *testing.T) {
	catalog := domain.TargetCatalog{domain.TargetABC: {}}
	src := decodeSource(t, `{"vendor":"srs","accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`)

	result := newTestBuilder(catalog).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Equal(t, domain.TargetABC, result.Order.Target)
	assert.Contains(t, result.Warnings, `Supplier "SRS" not recognized, defaulting to ABC.`)
}

func TestBuild_NonScalarSupplierWarns(t *testing.T) {
	tests := []struct {
		name     string
		supplier string
		want     string
	}{
		{"empty object", `{}`, `Supplier "{}" not recognized, defaulting to ABC.`},
		{"object", `{"name":"srs"}`, `Supplier "{\"name\":\"srs\"}" not recognized, defaulting to ABC.`},
		{"array", `["srs"]`, `Supplier "[\"srs\"]" not recognized, defaulting to ABC.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := decodeSource(t, `{"supplier":`+tt.supplier+`,"accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`)

			result := newTestBuilder(nil).Build(context.Background(), src)

			require.True(t, result.OK())
			assert.Equal(t, domain.TargetABC, result.Order.Target)
			assert.Equal(t, []string{tt.want}, result.Warnings)
		})
	}

	t.Run("absent supplier is silent", func(t *testing.T) {
		src := decodeSource(t, `{"supplier":"","accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`)
		result := newTestBuilder(nil).Build(context.Background(), src)
		require.True(t, result.OK())
		assert.Empty(t, result.Warnings)
	})
}

func TestBuild_DropsInvalidLines(t *testing.T) {
	src := decodeSource(t, `{
		"supplier":"beacon","accountNumber":"1","branchId":"2",
		"lineItems":[
			{"sku":"A","qty":1},
			{"sku":"B","qty":0},
			{"qty":3},
			{"sku":"C","qty":"abc"},
			{"itemNumber":"D","orderedQty":{"value":"4","uom":"bx"},"unitPrice":{"value":12.5}}
		]}`)

	result := newTestBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Equal(t, []string{
		"Line 2: missing SKU or quantity",
		"Line 3: missing SKU or quantity",
		"Line 4: missing SKU or quantity",
	}, result.Warnings)

	lines := result.Order.LineItems
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ItemCode)
	assert.Equal(t, "D", lines[1].ItemCode)
	assert.Equal(t, "BX", lines[1].UOM)
	assert.True(t, lines[1].Qty.Equal(decimal.NewFromInt(4)))
	require.NotNil(t, lines[1].UnitPrice)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.RequireFromString("12.5")))
	assert.Empty(t, lines[1].ProductNumber)
}

// recordSpans installs an in-memory span recorder as the global provider
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestBuild_RecordsDroppedLinesOnSpan(t *testing.T) {
	sr := recordSpans(t)

	src := decodeSource(t, `{"accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1},{"sku":"B"},{"qty":2}]}`)
	newTestBuilder(nil).Build(context.Background(), src)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "order.build", spans[0].Name())

	var indexes []int64
	for _, ev := range spans[0].Events() {
		require.Equal(t, "line_dropped", ev.Name)
		for _, kv := range ev.Attributes {
			if string(kv.Key) == telemetry.SpanAttrLineIndex {
				indexes = append(indexes, kv.Value.AsInt64())
			}
		}
	}
	assert.Equal(t, []int64{1, 2}, indexes)
}

func TestBuild_DropsNonFiniteQuantities(t *testing.T) {
	src := decodeSource(t, `{
		"supplier":"abc","accountNumber":"1","branchId":"2",
		"lineItems":[
			{"sku":"A","qty":"1e400"},
			{"sku":"B","qty":"1e50000000"},
			{"sku":"C","qty":"1e-400"},
			{"sku":"D","qty":"2","price":"1e400"}
		]}`)

	result := newTestBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Equal(t, []string{
		"Line 1: missing SKU or quantity",
		"Line 2: missing SKU or quantity",
		"Line 3: missing SKU or quantity",
	}, result.Warnings)
	require.Len(t, result.Order.LineItems, 1)
	assert.Equal(t, "D", result.Order.LineItems[0].ItemCode)
	assert.Nil(t, result.Order.LineItems[0].UnitPrice)
}

func TestBuild_RequiredFields(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		catalog    domain.TargetCatalog
		wantErrors []string
	}{
		{
			name:       "missing account",
			source:     `{"branchId":"2","lineItems":[{"sku":"A","qty":1}]}`,
			wantErrors: []string{MsgAccountRequired},
		},
		{
			name:       "missing branch and lines",
			source:     `{"accountNumber":"1","lineItems":[{"sku":"A","qty":0}]}`,
			wantErrors: []string{MsgBranchRequired, MsgNoLineItems},
		},
		{
			name:       "whitespace account",
			source:     `{"accountNumber":"  ","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`,
			wantErrors: []string{MsgAccountRequired},
		},
		{
			name:       "no line container",
			source:     `{"accountNumber":"1","branchId":"2"}`,
			wantErrors: []string{MsgNoLineItems},
		},
		{
			name:   "custom message and extra required field",
			source: `{"accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`,
			catalog: domain.TargetCatalog{domain.TargetABC: {
				RequiredFields: map[string]bool{domain.FieldAccountNumber: true, domain.FieldJobNumber: true},
				Messages:       map[string]string{domain.FieldJobNumber: "ABC needs a job number."},
			}},
			wantErrors: []string{"ABC needs a job number."},
		},
		{
			name:       "not required when catalog says so",
			source:     `{"lineItems":[{"sku":"A","qty":1}]}`,
			catalog:    domain.TargetCatalog{domain.TargetABC: {}},
			wantErrors: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestBuilder(tt.catalog).Build(context.Background(), decodeSource(t, tt.source))

			assert.Equal(t, tt.wantErrors, result.Errors)
			if len(tt.wantErrors) > 0 {
				assert.Nil(t, result.Order)
				assert.False(t, result.OK())
			} else {
				assert.NotNil(t, result.Order)
			}
		})
	}
}

func TestBuild_PathOverridesAndDefaults(t *testing.T) {
	catalog := domain.DefaultCatalog()
	catalog[domain.TargetSRS] = domain.TargetConfig{
		FieldPaths: map[string][]string{
			domain.FieldAccountNumber: {"srs.customer"},
		},
		RequiredFields: map[string]bool{domain.FieldAccountNumber: true, domain.FieldBranchID: true},
		DefaultValues: map[string]any{
			domain.FieldBranchID:          "BR1",
			domain.FieldCheckAvailability: "no",
		},
	}
	src := decodeSource(t, `{
		"supplier":"SRS","accountNumber":"ignored","srs":{"customer":"C-9"},
		"contact":{"name":"Pat","phone":"(555) 010-2000"},
		"lineItems":[{"sku":"A","qty":1}]}`)

	result := newTestBuilder(catalog).Build(context.Background(), src)

	require.True(t, result.OK(), result.Errors)
	assert.Equal(t, "C-9", result.Order.AccountNumber)
	assert.Equal(t, "BR1", result.Order.BranchID)
	assert.False(t, result.Order.CheckAvailability)
	assert.Empty(t, result.Warnings)
}

func TestBuild_ShipToAndContactOverrides(t *testing.T) {
	catalog := domain.DefaultCatalog()
	catalog[domain.TargetBeacon] = domain.TargetConfig{
		FieldPaths: map[string][]string{
			domain.FieldShipToCity:      {"site.town"},
			domain.FieldShipToCountry:   {"site.nation"},
			domain.FieldContactName:     {"site.foreman"},
			domain.FieldContactCCEmails: {"site.watchers"},
		},
		DefaultValues: map[string]any{
			domain.FieldContactPhone: "555-0100",
		},
	}
	src := decodeSource(t, `{
		"supplier":"beacon","accountNumber":"1","branchId":"2",
		"shipTo":{"city":"Ignored","state":"IL"},
		"contact":{"name":"Ignored"},
		"site":{"town":"Joliet","nation":"CAN","foreman":"Lee","watchers":["a@x.io","b@x.io"]},
		"lineItems":[{"sku":"A","qty":1}]}`)

	result := newTestBuilder(catalog).Build(context.Background(), src)

	require.True(t, result.OK(), result.Errors)
	o := result.Order
	assert.Equal(t, "Joliet", o.ShipTo.City)
	assert.Equal(t, "IL", o.ShipTo.State)
	assert.Equal(t, "CAN", o.ShipTo.Country)
	assert.Equal(t, "Lee", o.Contact.Name)
	assert.Equal(t, "555-0100", o.Contact.Phone)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, o.Contact.CCEmails)

	// other targets keep the built-in paths
	src["supplier"] = "abc"
	result = newTestBuilder(catalog).Build(context.Background(), src)
	require.True(t, result.OK())
	assert.Equal(t, "Ignored", result.Order.ShipTo.City)
	assert.Equal(t, "USA", result.Order.ShipTo.Country)
	assert.Equal(t, "Ignored", result.Order.Contact.Name)
}

func TestBuild_MultipleSources(t *testing.T) {
	draft := decodeSource(t, `{
		"supplier":"srs",
		"delivery":{"account_number":"from-draft","branch":"77","delivery_date":{"year":2025,"month":11,"date":5},
			"time_code":"am","delivery_type":"roofDrop","address_line_1":"1 Main","city":"Austin","state":"TX",
			"zip":"73301","primary_contact":"Lee","on_hold":"yes","request_id":"req-1"}
	}`)
	snapshot := decodeSource(t, `{
		"customerCode":"from-snapshot",
		"lineItems":[{"product_number":"P-1","quantity":"2.5","description":"Shingles","comments":"top"}],
		"payment":{"ExpMM":"05","ExpYY":"27","Type":"VI","LowValueToken":"tok","AVSZIPCode":"73301","FullName":"Lee"}
	}`)

	result := newTestBuilder(nil).Build(context.Background(), draft, nil, snapshot)

	require.True(t, result.OK(), result.Errors)
	o := result.Order

	// customerCode is an earlier path than delivery.account_number
	assert.Equal(t, "from-snapshot", o.AccountNumber)
	assert.Equal(t, "77", o.BranchID)
	assert.Equal(t, "2025-12-05", o.RequestedDate)
	assert.Equal(t, domain.TimeWindowMorning, o.TimeWindow)
	assert.Equal(t, domain.FulfillmentDeliveryRoof, o.FulfillmentMethod)
	assert.Equal(t, "1 Main", o.ShipTo.Address1)
	assert.Equal(t, "73301", o.ShipTo.PostalCode)
	assert.Equal(t, "Lee", o.Contact.Name)
	assert.True(t, o.HoldOrder)
	assert.Equal(t, "req-1", o.RequestID)

	require.Len(t, o.LineItems, 1)
	assert.Equal(t, "P-1", o.LineItems[0].ItemCode)
	assert.Equal(t, "Shingles", o.LineItems[0].Desc)
	assert.Equal(t, "top", o.LineItems[0].LineNote)

	require.NotNil(t, o.Payment)
	assert.Equal(t, domain.Payment{ExpMM: "05", ExpYY: "27", Type: "VI", Token: "tok", BillingZip: "73301", Name: "Lee"}, *o.Payment)

	assert.Equal(t, []string{MsgSRSContactPhone}, result.Warnings)
}

func TestBuild_PrimaryLineContainers(t *testing.T) {
	primary := decodeSource(t, `{"accountNumber":"1","branchId":"2","delivery":{"lineItems":[{"sku":"P","qty":1}]}}`)
	secondary := decodeSource(t, `{"lineItems":[{"sku":"S","qty":1}],"delivery":{"lineItems":[{"sku":"ignored","qty":1}]}}`)

	result := newTestBuilder(nil).Build(context.Background(), primary, secondary)
	require.True(t, result.OK())
	assert.Equal(t, "P", result.Order.LineItems[0].ItemCode)

	result = newTestBuilder(nil).Build(context.Background(), map[string]any{"accountNumber": "1", "branchId": "2"}, secondary)
	require.True(t, result.OK())
	assert.Equal(t, "S", result.Order.LineItems[0].ItemCode)
}

func TestBuild_UnparseableDateWarns(t *testing.T) {
	src := decodeSource(t, `{"accountNumber":"1","branchId":"2","requestedDate":"13/40/2025","lineItems":[{"sku":"A","qty":1}]}`)

	result := newTestBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Empty(t, result.Order.RequestedDate)
	assert.Equal(t, []string{MsgUnparseableDate}, result.Warnings)
}

func TestBuild_NoSources(t *testing.T) {
	result := newTestBuilder(nil).Build(context.Background())

	assert.Nil(t, result.Order)
	assert.Equal(t, []string{MsgAccountRequired, MsgBranchRequired, MsgNoLineItems}, result.Errors)
}

func TestBuild_DefaultIDGeneratorIsUUID(t *testing.T) {
	src := decodeSource(t, `{"accountNumber":"1","branchId":"2","lineItems":[{"sku":"A","qty":1}]}`)

	result := NewBuilder(nil).Build(context.Background(), src)

	require.True(t, result.OK())
	assert.Len(t, result.Order.RequestID, 36)
}

// Randomized orders built from realistic data must always satisfy the
// builder's output invariants.
func TestBuild_RandomizedInvariants(t *testing.T) {
	faker := gofakeit.New(42)
	targets := []string{"abc", "BEACON", "srs", "other", ""}

	for i := 0; i < 200; i++ {
		lines := make([]any, faker.Number(0, 6))
		for j := range lines {
			lines[j] = map[string]any{
				"sku":   faker.RandomString([]string{fmt.Sprintf("%d", faker.Number(1000, 99999)), "", " "}),
				"qty":   faker.Float64Range(-2, 20),
				"uom":   faker.RandomString([]string{"ea", "SQ", "bndl", ""}),
				"price": faker.Price(1, 500),
			}
		}
		src := map[string]any{
			"supplier":      faker.RandomString(targets),
			"accountNumber": faker.RandomString([]string{"", fmt.Sprintf("%d", faker.Number(100000, 999999))}),
			"branchId":      faker.RandomString([]string{"", fmt.Sprintf("%d", faker.Number(1, 999))}),
			"requestedDate": faker.Date().Format("1/2/2006"),
			"jobName":       faker.Company(),
			"shipTo":        map[string]any{"address1": faker.Street(), "city": faker.City(), "state": faker.StateAbr(), "postalCode": faker.Zip()},
			"contact":       map[string]any{"name": faker.Name(), "phone": faker.Phone(), "email": faker.Email()},
			"lineItems":     lines,
		}

		result := newTestBuilder(nil).Build(context.Background(), src)

		if len(result.Errors) > 0 {
			assert.Nil(t, result.Order)
			continue
		}
		o := result.Order
		require.NotNil(t, o)
		assert.True(t, o.Target.IsValid())
		assert.NotEmpty(t, o.LineItems)
		for _, line := range o.LineItems {
			assert.True(t, line.IsValid(), "line %+v", line)
		}
		assert.NoError(t, domain.CheckPreconditions(o))
		if o.RequestedDate != "" {
			_, err := time.Parse("2006-01-02", o.RequestedDate)
			assert.NoError(t, err)
		}
	}
}
