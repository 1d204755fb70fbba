package supplier

import "encoding/json"

// abcOrder is one entry of the ABC order array
type abcOrder struct {
	RequestID           string                 `json:"requestId"`
	PurchaseOrder       string                 `json:"purchaseOrder"`
	BranchNumber        string                 `json:"branchNumber"`
	DeliveryService     string                 `json:"deliveryService"`
	TypeCode            string                 `json:"typeCode"`
	Dates               *abcDates              `json:"dates,omitempty"`
	DeliveryAppointment abcDeliveryAppointment `json:"deliveryAppointment"`
	Currency            string                 `json:"currency"`
	ShipTo              abcShipTo              `json:"shipTo"`
	OrderComments       []abcComment           `json:"orderComments"`
	Lines               []abcLine              `json:"lines"`
}

type abcDates struct {
	DeliveryRequestedFor string `json:"deliveryRequestedFor"`
}

type abcDeliveryAppointment struct {
	InstructionsTypeCode string `json:"instructionsTypeCode"`
	Instructions         string `json:"instructions"`
	FromTime             string `json:"fromTime,omitempty"`
	ToTime               string `json:"toTime,omitempty"`
}

type abcShipTo struct {
	Name     string       `json:"name"`
	Number   string       `json:"number"`
	Address  *abcAddress  `json:"address,omitempty"`
	Contacts []abcContact `json:"contacts"`
}

type abcAddress struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	Line3   string `json:"line3"`
	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

type abcContact struct {
	Name         string     `json:"name"`
	FunctionCode string     `json:"functionCode"`
	Email        string     `json:"email"`
	Phones       []abcPhone `json:"phones"`
}

type abcPhone struct {
	Number string `json:"number"`
	Type   string `json:"type"`
	Ext    string `json:"ext"`
}

type abcComment struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type abcLine struct {
	ID              int           `json:"id"`
	ItemNumber      string        `json:"itemNumber"`
	ItemDescription string        `json:"itemDescription"`
	OrderedQty      abcQuantity   `json:"orderedQty"`
	Comments        *abcComment   `json:"comments,omitempty"`
	UnitPrice       *abcUnitPrice `json:"unitPrice,omitempty"`
}

type abcQuantity struct {
	Value json.Number `json:"value"`
	UOM   string      `json:"uom"`
}

type abcUnitPrice struct {
	Value        json.Number `json:"value"`
	UOM          string      `json:"uom"`
	Instructions string      `json:"instructions"`
}
