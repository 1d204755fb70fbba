package supplier

import (
	"fmt"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

// ABC field ceilings
const (
	abcMaxPurchaseOrder = 20
	abcMaxInstructions  = 255
	abcMaxOrderComment  = 255
	abcMaxLineComment   = 2048
)

const (
	abcTypeCodeSales      = "SO"
	abcCurrency           = "USD"
	abcFunctionCodeSM     = "SM"
	abcPhoneTypeMobile    = "MOBILE"
	abcOrderCommentHeader = "H"
	abcLineCommentDetail  = "D"
	abcDefaultServiceCode = "OTG"
	abcDefaultWindowCode  = "AT"
	abcFallbackIDPrefix   = "req-"
)

// ABCCompiler renders unified orders into the ABC Supply v2 order API shape
type ABCCompiler struct {
	config *ABCConfig
}

// NewABCCompiler creates a new ABCCompiler. A nil config uses defaults.
func NewABCCompiler(config *ABCConfig) (*ABCCompiler, error) {
	if config == nil {
		config = NewABCConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("abc compiler: %w", err)
	}
	return &ABCCompiler{config: config}, nil
}

// Target returns order.TargetABC
func (c *ABCCompiler) Target() order.Target {
	return order.TargetABC
}

// Compile builds the ABC request descriptor. The body is a one-element array.
func (c *ABCCompiler) Compile(o *order.UnifiedOrder) (*order.RequestDescriptor, error) {
	if err := order.CheckPreconditions(o); err != nil {
		return nil, withTarget(err, order.TargetABC)
	}

	body := abcOrder{
		RequestID:       normalize.Coalesce(o.RequestID, fallbackID(abcFallbackIDPrefix, o)),
		PurchaseOrder:   normalize.Truncate(o.PONumber, abcMaxPurchaseOrder),
		BranchNumber:    o.BranchID,
		DeliveryService: lookup(abcDeliveryService, o.FulfillmentMethod, abcDefaultServiceCode),
		TypeCode:        abcTypeCodeSales,
		DeliveryAppointment: abcDeliveryAppointment{
			InstructionsTypeCode: lookup(abcAppointmentCode, o.TimeWindow, abcDefaultWindowCode),
			Instructions:         normalize.Truncate(o.Notes, abcMaxInstructions),
			FromTime:             o.ExactFrom,
			ToTime:               o.ExactTo,
		},
		Currency: abcCurrency,
		ShipTo: abcShipTo{
			Name:     normalize.Coalesce(o.JobName, o.ShipTo.Name),
			Number:   o.AccountNumber,
			Contacts: []abcContact{},
		},
		OrderComments: []abcComment{},
		Lines:         make([]abcLine, 0, len(o.LineItems)),
	}

	if o.RequestedDate != "" {
		body.Dates = &abcDates{DeliveryRequestedFor: o.RequestedDate}
	}

	if o.ShipTo.HasAddress() {
		body.ShipTo.Address = &abcAddress{
			Line1:   o.ShipTo.Address1,
			Line2:   o.ShipTo.Address2,
			Line3:   o.ShipTo.Address3,
			City:    o.ShipTo.City,
			State:   o.ShipTo.State,
			Postal:  o.ShipTo.PostalCode,
			Country: normalize.Coalesce(o.ShipTo.Country, order.DefaultCountry),
		}
	}

	if o.Contact.Email != "" {
		body.ShipTo.Contacts = append(body.ShipTo.Contacts, abcContact{
			Name:         o.Contact.Name,
			FunctionCode: abcFunctionCodeSM,
			Email:        o.Contact.Email,
			Phones: []abcPhone{{
				Number: normalize.Digits(o.Contact.Phone),
				Type:   abcPhoneTypeMobile,
			}},
		})
	}

	if o.Notes != "" {
		body.OrderComments = append(body.OrderComments, abcComment{
			Code:        abcOrderCommentHeader,
			Description: normalize.Truncate(o.Notes, abcMaxOrderComment),
		})
	}

	for i, item := range o.LineItems {
		uom := item.UOMOrDefault()
		line := abcLine{
			ID:              i + 1,
			ItemNumber:      item.ItemCode,
			ItemDescription: item.Desc,
			OrderedQty:      abcQuantity{Value: order.Number(item.Qty), UOM: uom},
		}
		if item.LineNote != "" {
			line.Comments = &abcComment{
				Code:        abcLineCommentDetail,
				Description: normalize.Truncate(item.LineNote, abcMaxLineComment),
			}
		}
		if item.UnitPrice != nil {
			line.UnitPrice = &abcUnitPrice{Value: order.Number(*item.UnitPrice), UOM: uom}
		}
		body.Lines = append(body.Lines, line)
	}

	return order.NewJSONRequest(c.config.URL, []abcOrder{body})
}

// fallbackID derives a deterministic id from PreparedAt for orders that
// reached a compiler without a request id.
func fallbackID(prefix string, o *order.UnifiedOrder) string {
	return prefix + normalize.FormatInt(o.PreparedAt.UnixMilli())
}

// withTarget stamps the compiler's target onto a precondition error
func withTarget(err error, target order.Target) error {
	if pe, ok := err.(*order.PreconditionError); ok && pe.Target == "" {
		pe.Target = target
	}
	return err
}
