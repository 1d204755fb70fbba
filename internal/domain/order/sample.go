package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleOrder returns a fully populated order for previewing a supplier's
// request shape. preparedAt stamps the order; Beacon samples carry a payment
// block and SRS samples a request id derived from it.
func SampleOrder(target Target, preparedAt time.Time) *UnifiedOrder {
	price := decimal.NewFromInt(7)
	o := &UnifiedOrder{
		Target:            target,
		AccountNumber:     "123456",
		BranchID:          "595",
		SellingBranchID:   "595",
		JobName:           "Downtown Project",
		JobNumber:         "100200",
		PONumber:          "PO-78910",
		RequestedDate:     "2025-12-15",
		TimeWindow:        TimeWindowMorning,
		FulfillmentMethod: FulfillmentDeliveryGround,
		ShipTo: ShipTo{
			Name:       "Downtown Project",
			Address1:   "123 Main St",
			Address2:   "Dock 123",
			City:       "Chicago",
			State:      "IL",
			PostalCode: "60661",
			Country:    DefaultCountry,
		},
		Contact: Contact{
			Name:     "John Doe",
			Phone:    "888-222-1111",
			Email:    "john.doe@example.com",
			CCEmails: []string{"pm@example.com"},
			Address: ContactAddress{
				Address1:   "456 Office Dr",
				City:       "Chicago",
				State:      "IL",
				PostalCode: "60607",
			},
		},
		LineItems: []LineItem{
			{
				ItemCode:  "0170030024",
				ProductID: 170030024,
				Qty:       decimal.NewFromInt(3),
				UOM:       "CN",
				Desc:      "Paint Black 12 OZ",
				UnitPrice: &price,
				LineNote:  "Match existing trim",
			},
		},
		Notes:             "Leave on site",
		CheckAvailability: true,
		PreparedAt:        preparedAt,
	}

	switch target {
	case TargetBeacon:
		o.Payment = &Payment{
			ExpMM:      "05",
			ExpYY:      "27",
			Type:       "MC",
			Token:      "tok-example",
			BillingZip: "60661",
			Name:       "John Doe",
		}
	case TargetSRS:
		o.RequestID = "srs-" + preparedAt.UTC().Format("20060102150405")
	}
	return o
}
