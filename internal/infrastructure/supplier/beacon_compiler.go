package supplier

import (
	"fmt"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

// Beacon field ceilings
const (
	beaconMaxAccountID          = 6
	beaconMaxJobName            = 15
	beaconMaxJobNumber          = 7
	beaconMaxPurchaseOrderNo    = 22
	beaconMaxExtendedPO         = 50
	beaconMaxDescription        = 128
	beaconMaxLineComments       = 2048
	beaconMaxShippingMethod     = 1
	beaconMaxBranch             = 4
	beaconMaxAddressLine        = 30
	beaconMaxCity               = 25
	beaconMaxPostalCode         = 10
	beaconMaxState              = 2
	beaconMaxSpecialInstruction = 234
	beaconMaxUUID               = 100
	beaconMaxExpiry             = 2
)

const (
	beaconStatusInProcess   = "I"
	beaconDefaultShipping   = "D"
	beaconDefaultPickupTime = "Anytime"
	beaconFallbackIDPrefix  = "uuid-"
	beaconAvailabilityYes   = "yes"
	beaconAvailabilityNo    = "no"
)

// BeaconCompiler renders unified orders into Beacon's submitOrder shape
type BeaconCompiler struct {
	config *BeaconConfig
}

// NewBeaconCompiler creates a new BeaconCompiler. A nil config uses defaults.
func NewBeaconCompiler(config *BeaconConfig) (*BeaconCompiler, error) {
	if config == nil {
		config = NewBeaconConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("beacon compiler: %w", err)
	}
	return &BeaconCompiler{config: config}, nil
}

// Target returns order.TargetBeacon
func (c *BeaconCompiler) Target() order.Target {
	return order.TargetBeacon
}

// Compile builds the Beacon request descriptor
func (c *BeaconCompiler) Compile(o *order.UnifiedOrder) (*order.RequestDescriptor, error) {
	if err := order.CheckPreconditions(o); err != nil {
		return nil, withTarget(err, order.TargetBeacon)
	}

	availability := beaconAvailabilityNo
	if o.CheckAvailability {
		availability = beaconAvailabilityYes
	}

	body := beaconOrder{
		APISiteID: c.config.APISiteID,
		AccountID: normalize.Truncate(o.AccountNumber, beaconMaxAccountID),
		Job: beaconJob{
			JobName:   normalize.Truncate(o.JobName, beaconMaxJobName),
			JobNumber: normalize.Truncate(o.JobNumber, beaconMaxJobNumber),
		},
		PurchaseOrderNo: normalize.Truncate(o.PONumber, beaconMaxPurchaseOrderNo),
		ExtendedPO:      normalize.Truncate(o.PONote, beaconMaxExtendedPO),
		OrderStatusCode: beaconStatusInProcess,
		LineItems:       make([]beaconLineItem, 0, len(o.LineItems)),
		Shipping: beaconShipping{
			ShippingMethod: normalize.Truncate(
				lookup(beaconShippingMethod, o.FulfillmentMethod, beaconDefaultShipping), beaconMaxShippingMethod),
			ShippingBranch: normalize.Truncate(normalize.Coalesce(o.BranchID, o.SellingBranchID), beaconMaxBranch),
			Address: beaconAddress{
				Address1:   normalize.Truncate(o.ShipTo.Address1, beaconMaxAddressLine),
				Address2:   normalize.Truncate(o.ShipTo.Address2, beaconMaxAddressLine),
				City:       normalize.Truncate(o.ShipTo.City, beaconMaxCity),
				PostalCode: normalize.Truncate(o.ShipTo.PostalCode, beaconMaxPostalCode),
				State:      normalize.Truncate(o.ShipTo.State, beaconMaxState),
			},
		},
		SellingBranch:        normalize.Truncate(normalize.Coalesce(o.SellingBranchID, o.BranchID), beaconMaxBranch),
		SpecialInstruction:   normalize.Truncate(o.Notes, beaconMaxSpecialInstruction),
		CheckForAvailability: availability,
		PickupDate:           o.RequestedDate,
		PickupTime:           lookup(beaconPickupTime, o.TimeWindow, beaconDefaultPickupTime),
		OnHold:               o.HoldOrder,
		UUID: normalize.Truncate(
			normalize.Coalesce(o.RequestID, fallbackID(beaconFallbackIDPrefix, o)), beaconMaxUUID),
	}

	for _, item := range o.LineItems {
		body.LineItems = append(body.LineItems, beaconLineItem{
			ItemNumber:    item.ItemCode,
			Quantity:      order.Number(item.Qty),
			UnitOfMeasure: item.UOMOrDefault(),
			Description:   normalize.Truncate(item.Desc, beaconMaxDescription),
			LineComments:  normalize.Truncate(item.LineNote, beaconMaxLineComments),
			ProductNumber: normalize.Coalesce(item.ProductNumber, item.ItemCode),
		})
	}

	if p := o.Payment; p != nil {
		body.Payment = &beaconPayment{
			CardInfo: beaconCardInfo{
				ExpMM:    normalize.Truncate(p.ExpMM, beaconMaxExpiry),
				ExpYY:    normalize.Truncate(p.ExpYY, beaconMaxExpiry),
				Type:     p.Type,
				FullName: p.Name,
			},
			EncryptionTokenData:     beaconToken{LowValueToken: p.Token},
			AddressVerificationData: beaconAVS{AVSZIPCode: p.BillingZip},
		}
	}

	return order.NewJSONRequest(c.config.URL, body)
}
