package supplier

import "encoding/json"

type srsOrder struct {
	SourceSystem         string         `json:"sourceSystem"`
	CustomerCode         string         `json:"customerCode"`
	AccountNumber        string         `json:"accountNumber"`
	JobAccountNumber     int64          `json:"jobAccountNumber"`
	BranchCode           string         `json:"branchCode"`
	TransactionID        string         `json:"transactionID"`
	TransactionDate      string         `json:"transactionDate"`
	Notes                string         `json:"notes"`
	ShipTo               srsShipTo      `json:"shipTo"`
	PODetails            srsPODetails   `json:"poDetails"`
	OrderLineItemDetails []srsLineItem  `json:"orderLineItemDetails"`
	CustomerContactInfo  *srsContactInfo `json:"customerContactInfo,omitempty"`
}

type srsShipTo struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	AddressLine3 string `json:"addressLine3"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type srsPODetails struct {
	PONumber             string `json:"poNumber"`
	Reference            string `json:"reference"`
	JobNumber            string `json:"jobNumber"`
	OrderDate            string `json:"orderDate"`
	ExpectedDeliveryDate string `json:"expectedDeliveryDate"`
	ExpectedDeliveryTime string `json:"expectedDeliveryTime"`
	OrderType            string `json:"orderType"`
	ShippingMethod       string `json:"shippingMethod"`
}

type srsLineItem struct {
	ProductID    int64       `json:"productId"`
	ProductName  string      `json:"productName"`
	Option       string      `json:"option"`
	Quantity     json.Number `json:"quantity"`
	Price        int64       `json:"price"`
	CustomerItem string      `json:"customerItem"`
	UOM          string      `json:"uom"`
}

type srsContactInfo struct {
	CustomerContactName     string            `json:"customerContactName"`
	CustomerContactPhone    string            `json:"customerContactPhone"`
	CustomerContactEmail    string            `json:"customerContactEmail"`
	CustomerContactAddress  *srsContactAddress `json:"customerContactAddress,omitempty"`
	AdditionalContactEmails []string          `json:"additionalContactEmails"`
}

type srsContactAddress struct {
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}
