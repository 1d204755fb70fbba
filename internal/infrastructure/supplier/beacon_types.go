package supplier

import "encoding/json"

type beaconOrder struct {
	APISiteID            string           `json:"apiSiteId"`
	AccountID            string           `json:"accountId"`
	Job                  beaconJob        `json:"job"`
	PurchaseOrderNo      string           `json:"purchaseOrderNo"`
	ExtendedPO           string           `json:"extendedPO"`
	OrderStatusCode      string           `json:"orderStatusCode"`
	LineItems            []beaconLineItem `json:"lineItems"`
	Shipping             beaconShipping   `json:"shipping"`
	Payment              *beaconPayment   `json:"payment,omitempty"`
	SellingBranch        string           `json:"sellingBranch"`
	SpecialInstruction   string           `json:"specialInstruction"`
	CheckForAvailability string           `json:"checkForAvailability"`
	PickupDate           string           `json:"pickupDate"`
	PickupTime           string           `json:"pickupTime"`
	OnHold               bool             `json:"onHold"`
	UUID                 string           `json:"UUID"`
}

type beaconJob struct {
	JobName   string `json:"jobName"`
	JobNumber string `json:"jobNumber"`
}

type beaconLineItem struct {
	ItemNumber    string      `json:"itemNumber"`
	Quantity      json.Number `json:"quantity"`
	UnitOfMeasure string      `json:"unitOfMeasure"`
	Description   string      `json:"description"`
	LineComments  string      `json:"lineComments"`
	ProductNumber string      `json:"productNumber"`
}

type beaconShipping struct {
	ShippingMethod string        `json:"shippingMethod"`
	ShippingBranch string        `json:"shippingBranch"`
	Address        beaconAddress `json:"address"`
}

type beaconAddress struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	State      string `json:"state"`
}

type beaconPayment struct {
	CardInfo                beaconCardInfo `json:"cardInfo"`
	EncryptionTokenData     beaconToken    `json:"encryptionTokenData"`
	AddressVerificationData beaconAVS      `json:"addressVerificationData"`
}

// Beacon's payment block uses PascalCase keys
type beaconCardInfo struct {
	ExpMM    string `json:"ExpMM"`
	ExpYY    string `json:"ExpYY"`
	Type     string `json:"Type"`
	FullName string `json:"FullName"`
}

type beaconToken struct {
	LowValueToken string `json:"LowValueToken"`
}

type beaconAVS struct {
	AVSZIPCode string `json:"AVSZIPCode"`
}
