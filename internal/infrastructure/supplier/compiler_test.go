package supplier

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/supplierorders/internal/domain/order"
)

var preparedAt = time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)

func minimalOrder(target order.Target) *order.UnifiedOrder {
	return &order.UnifiedOrder{
		Target:            target,
		AccountNumber:     "12345",
		BranchID:          "001",
		TimeWindow:        order.TimeWindowAnytime,
		FulfillmentMethod: order.FulfillmentDeliveryGround,
		ShipTo:            order.ShipTo{Country: order.DefaultCountry},
		LineItems: []order.LineItem{
			{ItemCode: "SKU1", Qty: decimal.NewFromInt(2)},
		},
		RequestID:  "req-1",
		PreparedAt: preparedAt,
	}
}

func decodeObject(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func decodeABC(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body, 1)
	return body[0]
}

func allCompilers(t *testing.T) []order.Compiler {
	t.Helper()
	abc, err := NewABCCompiler(nil)
	require.NoError(t, err)
	beacon, err := NewBeaconCompiler(nil)
	require.NoError(t, err)
	srs, err := NewSRSCompiler(nil)
	require.NoError(t, err)
	return []order.Compiler{abc, beacon, srs}
}

// ---------------------------------------------------------------------------
// Shared behaviour
// ---------------------------------------------------------------------------

func TestCompilers_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *order.UnifiedOrder)
		want   string
	}{
		{name: "missing account", mutate: func(o *order.UnifiedOrder) { o.AccountNumber = "" }, want: "accountNumber required"},
		{name: "blank branch", mutate: func(o *order.UnifiedOrder) { o.BranchID = "  " }, want: "branchId required"},
		{name: "no lines", mutate: func(o *order.UnifiedOrder) { o.LineItems = nil }, want: "at least one line item required"},
	}

	for _, c := range allCompilers(t) {
		for _, tt := range tests {
			t.Run(string(c.Target())+"/"+tt.name, func(t *testing.T) {
				o := minimalOrder(c.Target())
				tt.mutate(o)

				req, err := c.Compile(o)
				require.Error(t, err)
				assert.Nil(t, req)
				assert.True(t, errors.Is(err, order.ErrPrecondition))

				var pe *order.PreconditionError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, c.Target(), pe.Target)
				assert.Contains(t, pe.Violations, tt.want)
			})
		}
	}

	t.Run("nil order", func(t *testing.T) {
		for _, c := range allCompilers(t) {
			_, err := c.Compile(nil)
			assert.ErrorIs(t, err, order.ErrPrecondition)
		}
	})
}

func TestCompilers_Idempotent(t *testing.T) {
	for _, c := range allCompilers(t) {
		t.Run(string(c.Target()), func(t *testing.T) {
			o := order.SampleOrder(c.Target(), preparedAt)

			first, err := c.Compile(o)
			require.NoError(t, err)
			second, err := c.Compile(o)
			require.NoError(t, err)

			assert.Equal(t, string(first.Body), string(second.Body))
			assert.Equal(t, "POST", first.Method)
			assert.Equal(t, "application/json", first.Headers["Content-Type"])
		})
	}
}

func TestCompilers_DoNotMutateOrder(t *testing.T) {
	for _, c := range allCompilers(t) {
		o := order.SampleOrder(c.Target(), preparedAt)
		o.PONumber = strings.Repeat("P", 40)
		before := *o
		_, err := c.Compile(o)
		require.NoError(t, err)
		assert.Equal(t, before.PONumber, o.PONumber)
		assert.Equal(t, before.LineItems, o.LineItems)
	}
}

func TestNewCompilers_InvalidConfig(t *testing.T) {
	_, err := NewABCCompiler(&ABCConfig{})
	assert.ErrorIs(t, err, ErrConfigMissingURL)
	_, err = NewBeaconCompiler(&BeaconConfig{URL: "/x"})
	assert.ErrorIs(t, err, ErrConfigMissingSiteID)
	_, err = NewSRSCompiler(&SRSConfig{SourceSystem: "WEB"})
	assert.ErrorIs(t, err, ErrConfigMissingURL)
}

// ---------------------------------------------------------------------------
// ABC
// ---------------------------------------------------------------------------

func TestABCCompiler_MinimalOrder(t *testing.T) {
	c, err := NewABCCompiler(nil)
	require.NoError(t, err)

	req, err := c.Compile(minimalOrder(order.TargetABC))
	require.NoError(t, err)
	assert.Equal(t, ABCOrdersURL, req.URL)
	assert.True(t, strings.HasPrefix(string(req.Body), "["))

	body := decodeABC(t, req.Body)
	assert.Equal(t, "req-1", body["requestId"])
	assert.Equal(t, "001", body["branchNumber"])
	assert.Equal(t, "OTG", body["deliveryService"])
	assert.Equal(t, "SO", body["typeCode"])
	assert.Equal(t, "USD", body["currency"])
	assert.NotContains(t, body, "dates")

	appt := body["deliveryAppointment"].(map[string]any)
	assert.Equal(t, "AT", appt["instructionsTypeCode"])
	assert.NotContains(t, appt, "fromTime")
	assert.NotContains(t, appt, "toTime")

	shipTo := body["shipTo"].(map[string]any)
	assert.Equal(t, "12345", shipTo["number"])
	assert.NotContains(t, shipTo, "address")
	assert.Equal(t, []any{}, shipTo["contacts"])
	assert.Equal(t, []any{}, body["orderComments"])

	lines := body["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, float64(1), line["id"])
	assert.Equal(t, "SKU1", line["itemNumber"])
	assert.Equal(t, map[string]any{"value": float64(2), "uom": "EA"}, line["orderedQty"])
	assert.NotContains(t, line, "comments")
	assert.NotContains(t, line, "unitPrice")
}

func TestABCCompiler_FullOrder(t *testing.T) {
	c, err := NewABCCompiler(nil)
	require.NoError(t, err)

	o := order.SampleOrder(order.TargetABC, preparedAt)
	o.TimeWindow = order.TimeWindowRange
	o.ExactFrom = "08:00"
	o.ExactTo = "10:00"
	req, err := c.Compile(o)
	require.NoError(t, err)

	body := decodeABC(t, req.Body)
	assert.Equal(t, "req-1761984000000", body["requestId"])
	assert.Equal(t, map[string]any{"deliveryRequestedFor": "2025-12-15"}, body["dates"])

	appt := body["deliveryAppointment"].(map[string]any)
	assert.Equal(t, "TR", appt["instructionsTypeCode"])
	assert.Equal(t, "08:00", appt["fromTime"])
	assert.Equal(t, "10:00", appt["toTime"])

	shipTo := body["shipTo"].(map[string]any)
	assert.Equal(t, "Downtown Project", shipTo["name"])
	address := shipTo["address"].(map[string]any)
	assert.Equal(t, "123 Main St", address["line1"])
	assert.Equal(t, "60661", address["postal"])
	assert.Equal(t, "USA", address["country"])

	contacts := shipTo["contacts"].([]any)
	require.Len(t, contacts, 1)
	contact := contacts[0].(map[string]any)
	assert.Equal(t, "SM", contact["functionCode"])
	assert.Equal(t, []any{map[string]any{"number": "8882221111", "type": "MOBILE", "ext": ""}}, contact["phones"])

	assert.Equal(t, []any{map[string]any{"code": "H", "description": "Leave on site"}}, body["orderComments"])

	line := body["lines"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"code": "D", "description": "Match existing trim"}, line["comments"])
	assert.Equal(t, map[string]any{"value": float64(7), "uom": "CN", "instructions": ""}, line["unitPrice"])
}

func TestABCCompiler_Truncation(t *testing.T) {
	c, err := NewABCCompiler(nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		poNumber string
		want     string
	}{
		{name: "at ceiling", poNumber: strings.Repeat("A", 20), want: strings.Repeat("A", 20)},
		{name: "one over ceiling", poNumber: strings.Repeat("A", 21), want: strings.Repeat("A", 20)},
		{name: "multibyte", poNumber: strings.Repeat("é", 25), want: strings.Repeat("é", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := minimalOrder(order.TargetABC)
			o.PONumber = tt.poNumber
			req, err := c.Compile(o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decodeABC(t, req.Body)["purchaseOrder"])
		})
	}

	o := minimalOrder(order.TargetABC)
	o.Notes = strings.Repeat("n", 300)
	o.LineItems[0].LineNote = strings.Repeat("l", 3000)
	req, err := c.Compile(o)
	require.NoError(t, err)
	body := decodeABC(t, req.Body)
	assert.Len(t, body["deliveryAppointment"].(map[string]any)["instructions"], 255)
	assert.Len(t, body["orderComments"].([]any)[0].(map[string]any)["description"], 255)
	assert.Len(t, body["lines"].([]any)[0].(map[string]any)["comments"].(map[string]any)["description"], 2048)
}

func TestABCCompiler_FractionalQuantityKeepsPrecision(t *testing.T) {
	c, err := NewABCCompiler(nil)
	require.NoError(t, err)

	o := minimalOrder(order.TargetABC)
	o.LineItems[0].Qty = decimal.RequireFromString("1.25")
	req, err := c.Compile(o)
	require.NoError(t, err)
	assert.Contains(t, string(req.Body), `"orderedQty":{"value":1.25,"uom":"EA"}`)
}

func TestABCCompiler_MappingTables(t *testing.T) {
	c, err := NewABCCompiler(nil)
	require.NoError(t, err)

	methods := map[order.FulfillmentMethod]string{
		order.FulfillmentPickupBranch:   "CPU",
		order.FulfillmentDeliveryGround: "OTG",
		order.FulfillmentDeliveryRoof:   "OTR",
		order.FulfillmentThirdParty:     "TPC",
	}
	for method, want := range methods {
		o := minimalOrder(order.TargetABC)
		o.FulfillmentMethod = method
		req, err := c.Compile(o)
		require.NoError(t, err)
		assert.Equal(t, want, decodeABC(t, req.Body)["deliveryService"], method)
	}

	windows := map[order.TimeWindow]string{
		order.TimeWindowAnytime:   "AT",
		order.TimeWindowMorning:   "AM",
		order.TimeWindowAfternoon: "PM",
		order.TimeWindowSpecial:   "AT",
		order.TimeWindowExact:     "ST",
		order.TimeWindowRange:     "TR",
	}
	for window, want := range windows {
		o := minimalOrder(order.TargetABC)
		o.TimeWindow = window
		req, err := c.Compile(o)
		require.NoError(t, err)
		appt := decodeABC(t, req.Body)["deliveryAppointment"].(map[string]any)
		assert.Equal(t, want, appt["instructionsTypeCode"], window)
	}
}

// ---------------------------------------------------------------------------
// Beacon
// ---------------------------------------------------------------------------

func TestBeaconCompiler_SampleOrder(t *testing.T) {
	c, err := NewBeaconCompiler(&BeaconConfig{URL: BeaconSubmitURL, APISiteID: "PORTAL"})
	require.NoError(t, err)

	o := order.SampleOrder(order.TargetBeacon, preparedAt)
	o.HoldOrder = true
	req, err := c.Compile(o)
	require.NoError(t, err)
	assert.Equal(t, "/submitOrder", req.URL)

	body := decodeObject(t, req.Body)
	assert.Equal(t, "PORTAL", body["apiSiteId"])
	assert.Equal(t, "123456", body["accountId"])
	assert.Equal(t, map[string]any{"jobName": "Downtown Projec", "jobNumber": "100200"}, body["job"])
	assert.Equal(t, "I", body["orderStatusCode"])
	assert.Equal(t, "595", body["sellingBranch"])
	assert.Equal(t, "yes", body["checkForAvailability"])
	assert.Equal(t, "2025-12-15", body["pickupDate"])
	assert.Equal(t, "Morning", body["pickupTime"])
	assert.Equal(t, true, body["onHold"])
	assert.Equal(t, "uuid-1761984000000", body["UUID"])

	shipping := body["shipping"].(map[string]any)
	assert.Equal(t, "D", shipping["shippingMethod"])
	assert.Equal(t, "595", shipping["shippingBranch"])

	item := body["lineItems"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(3), item["quantity"])
	assert.Equal(t, "CN", item["unitOfMeasure"])
	assert.Equal(t, "0170030024", item["productNumber"])

	payment := body["payment"].(map[string]any)
	assert.Equal(t, map[string]any{"ExpMM": "05", "ExpYY": "27", "Type": "MC", "FullName": "John Doe"}, payment["cardInfo"])
	assert.Equal(t, map[string]any{"LowValueToken": "tok-example"}, payment["encryptionTokenData"])
	assert.Equal(t, map[string]any{"AVSZIPCode": "60661"}, payment["addressVerificationData"])
}

func TestBeaconCompiler_OmitsPaymentAndFallsBackBranches(t *testing.T) {
	c, err := NewBeaconCompiler(nil)
	require.NoError(t, err)

	o := minimalOrder(order.TargetBeacon)
	o.FulfillmentMethod = order.FulfillmentPickupBranch
	req, err := c.Compile(o)
	require.NoError(t, err)

	body := decodeObject(t, req.Body)
	assert.NotContains(t, body, "payment")
	assert.Equal(t, "WEB", body["apiSiteId"])
	assert.Equal(t, "no", body["checkForAvailability"])
	assert.Equal(t, "001", body["sellingBranch"])
	assert.Equal(t, "P", body["shipping"].(map[string]any)["shippingMethod"])
	assert.Equal(t, "req-1", body["UUID"])
}

func TestBeaconCompiler_Truncation(t *testing.T) {
	c, err := NewBeaconCompiler(nil)
	require.NoError(t, err)

	o := minimalOrder(order.TargetBeacon)
	o.AccountNumber = "1234567890"
	o.JobNumber = "ABCDEFGHIJ"
	o.PONumber = strings.Repeat("P", 30)
	o.PONote = strings.Repeat("N", 60)
	o.BranchID = "BRANCH01"
	o.Notes = strings.Repeat("x", 300)
	o.RequestID = strings.Repeat("r", 150)
	o.ShipTo = order.ShipTo{
		Address1:   strings.Repeat("a", 40),
		City:       strings.Repeat("c", 40),
		PostalCode: "606610000000",
		State:      "Illinois",
	}
	o.LineItems[0].Desc = strings.Repeat("d", 200)
	o.Payment = &order.Payment{ExpMM: "005", ExpYY: "2027"}

	req, err := c.Compile(o)
	require.NoError(t, err)
	body := decodeObject(t, req.Body)

	assert.Equal(t, "123456", body["accountId"])
	assert.Equal(t, "ABCDEFG", body["job"].(map[string]any)["jobNumber"])
	assert.Len(t, body["purchaseOrderNo"], 22)
	assert.Len(t, body["extendedPO"], 50)
	assert.Len(t, body["specialInstruction"], 234)
	assert.Len(t, body["UUID"], 100)
	assert.Equal(t, "BRAN", body["sellingBranch"])

	shipping := body["shipping"].(map[string]any)
	assert.Equal(t, "BRAN", shipping["shippingBranch"])
	address := shipping["address"].(map[string]any)
	assert.Len(t, address["address1"], 30)
	assert.Len(t, address["city"], 25)
	assert.Equal(t, "6066100000", address["postalCode"])
	assert.Equal(t, "Il", address["state"])

	assert.Len(t, body["lineItems"].([]any)[0].(map[string]any)["description"], 128)
	card := body["payment"].(map[string]any)["cardInfo"].(map[string]any)
	assert.Equal(t, "00", card["ExpMM"])
	assert.Equal(t, "20", card["ExpYY"])
}

// ---------------------------------------------------------------------------
// SRS
// ---------------------------------------------------------------------------

func TestSRSCompiler_SampleOrder(t *testing.T) {
	c, err := NewSRSCompiler(nil)
	require.NoError(t, err)

	req, err := c.Compile(order.SampleOrder(order.TargetSRS, preparedAt))
	require.NoError(t, err)
	assert.Equal(t, "/submitOrder", req.URL)

	body := decodeObject(t, req.Body)
	assert.Equal(t, "WEB", body["sourceSystem"])
	assert.Equal(t, "123456", body["customerCode"])
	assert.Equal(t, "123456", body["accountNumber"])
	assert.Equal(t, float64(100200), body["jobAccountNumber"])
	assert.Equal(t, "595", body["branchCode"])
	assert.Equal(t, "srs-20251101080000", body["transactionID"])
	assert.Equal(t, "2025-11-01T08:00:00.000Z", body["transactionDate"])

	po := body["poDetails"].(map[string]any)
	assert.Equal(t, "PO-78910", po["poNumber"])
	assert.Equal(t, "2025-12-15", po["orderDate"])
	assert.Equal(t, "2025-12-15", po["expectedDeliveryDate"])
	assert.Equal(t, "Morning", po["expectedDeliveryTime"])
	assert.Equal(t, "WHSE", po["orderType"])
	assert.Equal(t, "Ground Drop", po["shippingMethod"])

	line := body["orderLineItemDetails"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(170030024), line["productId"])
	assert.Equal(t, "Paint Black 12 OZ", line["productName"])
	assert.Equal(t, float64(7), line["price"])
	assert.Equal(t, "0170030024", line["customerItem"])

	contact := body["customerContactInfo"].(map[string]any)
	assert.Equal(t, "8882221111", contact["customerContactPhone"])
	assert.Equal(t, []any{"pm@example.com"}, contact["additionalContactEmails"])
	assert.Equal(t, "456 Office Dr", contact["customerContactAddress"].(map[string]any)["addressLine1"])
}

func TestSRSCompiler_Defaults(t *testing.T) {
	c, err := NewSRSCompiler(&SRSConfig{URL: "https://srs.example.com/submitOrder", SourceSystem: "ERP"})
	require.NoError(t, err)

	o := minimalOrder(order.TargetSRS)
	o.JobNumber = "J-77"
	o.RequestID = ""
	o.FulfillmentMethod = order.FulfillmentThirdParty
	o.TimeWindow = order.TimeWindowExact
	req, err := c.Compile(o)
	require.NoError(t, err)
	assert.Equal(t, "https://srs.example.com/submitOrder", req.URL)

	body := decodeObject(t, req.Body)
	assert.Equal(t, "ERP", body["sourceSystem"])
	assert.Equal(t, float64(0), body["jobAccountNumber"])
	assert.Equal(t, "txn-1761984000000", body["transactionID"])

	po := body["poDetails"].(map[string]any)
	assert.Equal(t, "N/A", po["poNumber"])
	assert.Equal(t, "2025-11-01", po["orderDate"])
	assert.Equal(t, "", po["expectedDeliveryDate"])
	assert.Equal(t, "Special", po["expectedDeliveryTime"])
	assert.Equal(t, "Third-Party Carrier", po["shippingMethod"])

	line := body["orderLineItemDetails"].([]any)[0].(map[string]any)
	assert.Equal(t, "SKU1", line["productName"])
	assert.Equal(t, float64(0), line["price"])
	assert.Equal(t, "EA", line["uom"])

	assert.NotContains(t, body, "customerContactInfo")
}

func TestSRSCompiler_ContactBlock(t *testing.T) {
	c, err := NewSRSCompiler(nil)
	require.NoError(t, err)

	t.Run("name only omits address", func(t *testing.T) {
		o := minimalOrder(order.TargetSRS)
		o.Contact = order.Contact{Name: "Pat", Address: order.ContactAddress{State: "  "}}
		req, err := c.Compile(o)
		require.NoError(t, err)

		contact := decodeObject(t, req.Body)["customerContactInfo"].(map[string]any)
		assert.Equal(t, "Pat", contact["customerContactName"])
		assert.Equal(t, []any{}, contact["additionalContactEmails"])
		assert.NotContains(t, contact, "customerContactAddress")
	})

	t.Run("blank leaves omit the block", func(t *testing.T) {
		o := minimalOrder(order.TargetSRS)
		o.Contact = order.Contact{Name: " ", Phone: "", Address: order.ContactAddress{City: "\t"}}
		req, err := c.Compile(o)
		require.NoError(t, err)
		assert.NotContains(t, decodeObject(t, req.Body), "customerContactInfo")
	})
}

func TestSRSCompiler_PriceRounding(t *testing.T) {
	c, err := NewSRSCompiler(nil)
	require.NoError(t, err)

	tests := []struct {
		price string
		want  float64
	}{
		{price: "7.49", want: 7},
		{price: "7.5", want: 8},
		{price: "12.99", want: 13},
		{price: "0.2", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			o := minimalOrder(order.TargetSRS)
			p := decimal.RequireFromString(tt.price)
			o.LineItems[0].UnitPrice = &p
			req, err := c.Compile(o)
			require.NoError(t, err)
			line := decodeObject(t, req.Body)["orderLineItemDetails"].([]any)[0].(map[string]any)
			assert.Equal(t, tt.want, line["price"])
		})
	}
}
