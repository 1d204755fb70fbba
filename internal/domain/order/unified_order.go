package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUOM is the unit of measure assumed when a line carries none
const DefaultUOM = "EA"

// DefaultCountry is the ship-to country assumed when none is given
const DefaultCountry = "USA"

// UnifiedOrder is the canonical, supplier-agnostic order record.
// Treat it as read-only once the builder returns it.
type UnifiedOrder struct {
	Target            Target            `json:"target"`
	AccountNumber     string            `json:"accountNumber"`
	BranchID          string            `json:"branchId"`
	SellingBranchID   string            `json:"sellingBranchId"`
	JobName           string            `json:"jobName"`
	JobNumber         string            `json:"jobNumber"`
	PONumber          string            `json:"poNumber"`
	PONote            string            `json:"poNote"`
	RequestedDate     string            `json:"requestedDate"`
	TimeWindow        TimeWindow        `json:"timeWindow"`
	ExactFrom         string            `json:"exactFrom"`
	ExactTo           string            `json:"exactTo"`
	FulfillmentMethod FulfillmentMethod `json:"fulfillmentMethod"`
	ShipTo            ShipTo            `json:"shipTo"`
	Contact           Contact           `json:"contact"`
	LineItems         []LineItem        `json:"lineItems"`
	Notes             string            `json:"notes"`
	CheckAvailability bool              `json:"checkAvailability"`
	HoldOrder         bool              `json:"holdOrder"`
	Payment           *Payment          `json:"payment,omitempty"`
	RequestID         string            `json:"requestId"`
	PreparedAt        time.Time         `json:"preparedAt"`
}

// ShipTo is the delivery destination
type ShipTo struct {
	Name       string `json:"name"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	Address3   string `json:"address3"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// HasAddress reports whether any address leaf carries content. The country
// alone does not make an address since it is always defaulted.
func (s ShipTo) HasAddress() bool {
	return anyNonBlank(s.Address1, s.Address2, s.Address3, s.City, s.State, s.PostalCode)
}

// Contact is the on-site or ordering contact
type Contact struct {
	Name     string         `json:"name"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email"`
	CCEmails []string       `json:"ccEmails"`
	Address  ContactAddress `json:"address"`
}

// IsEmpty reports whether the contact carries nothing worth sending
func (c Contact) IsEmpty() bool {
	return !anyNonBlank(c.Name, c.Phone, c.Email) && len(c.CCEmails) == 0 && c.Address.IsEmpty()
}

// ContactAddress is the contact's mailing address
type ContactAddress struct {
	Address1   string `json:"address1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// IsEmpty reports whether every leaf is blank
func (a ContactAddress) IsEmpty() bool {
	return !anyNonBlank(a.Address1, a.City, a.State, a.PostalCode)
}

// Payment carries tokenized card data. Only Beacon accepts it.
type Payment struct {
	ExpMM      string `json:"expMM"`
	ExpYY      string `json:"expYY"`
	Type       string `json:"type"`
	Token      string `json:"token"`
	BillingZip string `json:"billingZip"`
	Name       string `json:"name"`
}

// LineItem is one ordered product line
type LineItem struct {
	ItemCode      string           `json:"itemCode"`
	Qty           decimal.Decimal  `json:"qty"`
	UOM           string           `json:"uom"`
	Desc          string           `json:"desc"`
	Option        string           `json:"option"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	LineNote      string           `json:"lineNote"`
	ProductID     int64            `json:"productId"`
	ProductNumber string           `json:"productNumber,omitempty"`
}

// IsValid reports whether the line can be submitted: it needs an item code
// and a positive quantity.
func (l LineItem) IsValid() bool {
	return l.ItemCode != "" && l.Qty.IsPositive()
}

// UOMOrDefault returns the line's unit of measure or EA
func (l LineItem) UOMOrDefault() string {
	if l.UOM == "" {
		return DefaultUOM
	}
	return l.UOM
}

func anyNonBlank(values ...string) bool {
	for _, v := range values {
		for _, r := range v {
			if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
				return true
			}
		}
	}
	return false
}
