package supplier

import (
	"fmt"
	"time"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

const (
	srsOrderTypeWarehouse    = "WHSE"
	srsDefaultPONumber       = "N/A"
	srsDefaultShipping       = "Ground Drop"
	srsDefaultDeliveryTime   = "Anytime"
	srsFallbackIDPrefix      = "txn-"
	srsTransactionDateLayout = "2006-01-02T15:04:05.000Z"
)

// SRSCompiler renders unified orders into SRS's submitOrder shape
type SRSCompiler struct {
	config *SRSConfig
}

// NewSRSCompiler creates a new SRSCompiler. A nil config uses defaults.
func NewSRSCompiler(config *SRSConfig) (*SRSCompiler, error) {
	if config == nil {
		config = NewSRSConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("srs compiler: %w", err)
	}
	return &SRSCompiler{config: config}, nil
}

// Target returns order.TargetSRS
func (c *SRSCompiler) Target() order.Target {
	return order.TargetSRS
}

// Compile builds the SRS request descriptor. Time-dependent fields derive
// from the order's PreparedAt so repeated compiles are byte-identical.
func (c *SRSCompiler) Compile(o *order.UnifiedOrder) (*order.RequestDescriptor, error) {
	if err := order.CheckPreconditions(o); err != nil {
		return nil, withTarget(err, order.TargetSRS)
	}

	prepared := o.PreparedAt.UTC()
	body := srsOrder{
		SourceSystem:     c.config.SourceSystem,
		CustomerCode:     o.AccountNumber,
		AccountNumber:    o.AccountNumber,
		JobAccountNumber: normalize.IntOrZero(o.JobNumber),
		BranchCode:       o.BranchID,
		TransactionID:    normalize.Coalesce(o.RequestID, fallbackID(srsFallbackIDPrefix, o)),
		TransactionDate:  prepared.Format(srsTransactionDateLayout),
		Notes:            o.Notes,
		ShipTo: srsShipTo{
			Name:         normalize.Coalesce(o.JobName, o.ShipTo.Name),
			AddressLine1: o.ShipTo.Address1,
			AddressLine2: o.ShipTo.Address2,
			AddressLine3: o.ShipTo.Address3,
			City:         o.ShipTo.City,
			State:        o.ShipTo.State,
			ZipCode:      o.ShipTo.PostalCode,
		},
		PODetails: srsPODetails{
			PONumber:             normalize.Coalesce(o.PONumber, srsDefaultPONumber),
			Reference:            o.PONote,
			JobNumber:            o.JobNumber,
			OrderDate:            normalize.Coalesce(o.RequestedDate, prepared.Format(time.DateOnly)),
			ExpectedDeliveryDate: o.RequestedDate,
			ExpectedDeliveryTime: lookup(srsDeliveryTime, o.TimeWindow, srsDefaultDeliveryTime),
			OrderType:            srsOrderTypeWarehouse,
			ShippingMethod:       lookup(srsShippingMethod, o.FulfillmentMethod, srsDefaultShipping),
		},
		OrderLineItemDetails: make([]srsLineItem, 0, len(o.LineItems)),
		CustomerContactInfo:  srsContact(o.Contact),
	}

	for _, item := range o.LineItems {
		var price int64
		if item.UnitPrice != nil {
			price = item.UnitPrice.Round(0).IntPart()
		}
		body.OrderLineItemDetails = append(body.OrderLineItemDetails, srsLineItem{
			ProductID:    item.ProductID,
			ProductName:  normalize.Coalesce(item.Desc, item.ItemCode),
			Option:       item.Option,
			Quantity:     order.Number(item.Qty),
			Price:        price,
			CustomerItem: item.ItemCode,
			UOM:          item.UOMOrDefault(),
		})
	}

	return order.NewJSONRequest(c.config.URL, body)
}

// srsContact renders the contact block, or nil when every leaf is blank
func srsContact(contact order.Contact) *srsContactInfo {
	if contact.IsEmpty() {
		return nil
	}
	info := &srsContactInfo{
		CustomerContactName:     contact.Name,
		CustomerContactPhone:    normalize.Digits(contact.Phone),
		CustomerContactEmail:    contact.Email,
		AdditionalContactEmails: contact.CCEmails,
	}
	if info.AdditionalContactEmails == nil {
		info.AdditionalContactEmails = []string{}
	}
	if !contact.Address.IsEmpty() {
		info.CustomerContactAddress = &srsContactAddress{
			AddressLine1: contact.Address.Address1,
			City:         contact.Address.City,
			State:        contact.Address.State,
			ZipCode:      contact.Address.PostalCode,
		}
	}
	return info
}
