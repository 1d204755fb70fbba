package order

import domain "github.com/erp/supplierorders/internal/domain/order"

// Built-in lookup paths per canonical field, most specific first. A target's
// fieldPaths entry replaces the list for that field.
var fieldPaths = map[string][]string{
	domain.FieldAccountNumber: {
		"accountNumber", "account_number",
		"customerCode", "customer_code",
		"customerNumber", "customer_number",
		"accountId", "account_id",
		"delivery.accountNumber", "delivery.account_number",
		"delivery.customerNumber", "delivery.customer_number",
		"delivery.ship_to_number",
		"shipToNumber", "ship_to_number",
	},
	domain.FieldBranchID: {
		"branchId", "branch_id",
		"branchNumber", "branch_number",
		"branchCode", "branch_code",
		"delivery.branch", "delivery.branchId", "delivery.branch_id",
		"delivery.branch_code", "delivery.branch_number",
		"sellingBranchId", "selling_branch_id",
	},
	domain.FieldSellingBranchID: {
		"sellingBranchId", "selling_branch_id",
		"delivery.sellingBranch", "delivery.selling_branch", "delivery.shipping_branch",
	},
	domain.FieldJobName: {
		"jobName", "job_name", "delivery.jobName", "delivery.job_name", "delivery.site_name",
	},
	domain.FieldJobNumber: {
		"jobNumber", "job_number", "delivery.jobNumber", "delivery.job_number",
	},
	domain.FieldPONumber: {
		"poNumber", "po_number", "delivery.po_number", "delivery.purchase_order",
		"orderNumber", "order_number",
	},
	domain.FieldPONote: {
		"poNote", "po_note", "delivery.po_note", "delivery.delivery_instructions", "notes",
	},
	domain.FieldRequestedDate: {
		"requestedDate", "requested_date",
		"delivery.delivery_date.formattedDate", "delivery.delivery_date",
		"delivery.date", "delivery.expectedDate",
	},
	domain.FieldTimeWindow: {
		"timeWindow", "time_window", "delivery.time_code",
		"delivery.timeWindow", "delivery.time_window", "delivery.delivery_time",
	},
	domain.FieldExactFrom: {
		"exactFrom", "delivery.exact_from", "delivery.exact_start",
		"delivery.exact_time_from", "delivery.exactTimeFrom",
	},
	domain.FieldExactTo: {
		"exactTo", "delivery.exact_to", "delivery.exact_end",
		"delivery.exact_time_to", "delivery.exactTimeTo",
	},
	domain.FieldFulfillmentMethod: {
		"fulfillmentMethod", "fulfillment_method", "delivery.delivery_type",
		"delivery.fulfillmentMethod", "delivery.fulfillment_method",
	},
	domain.FieldNotes: {
		"notes", "delivery.delivery_instructions", "delivery.notes",
	},
	domain.FieldCheckAvailability: {"checkAvailability", "delivery.check_availability"},
	domain.FieldHoldOrder:         {"holdOrder", "delivery.on_hold"},
	domain.FieldRequestID: {
		"requestId", "delivery.request_id", "delivery.reference_id", "orderId", "order_id",
	},

	domain.FieldShipToName:     {"shipTo.name", "delivery.jobName", "delivery.job_name", "delivery.site_name", "jobName"},
	domain.FieldShipToAddress1: {"shipTo.address1", "delivery.address_line_1", "delivery.address1", "delivery.address.address1"},
	domain.FieldShipToAddress2: {"shipTo.address2", "delivery.address_line_2", "delivery.address2", "delivery.address.address2"},
	domain.FieldShipToAddress3: {"shipTo.address3", "delivery.address_line_3", "delivery.address3", "delivery.address.address3"},
	domain.FieldShipToCity:     {"shipTo.city", "delivery.city", "delivery.address.city"},
	domain.FieldShipToState:    {"shipTo.state", "delivery.state", "delivery.address.state"},
	domain.FieldShipToPostalCode: {
		"shipTo.postalCode", "delivery.postal_code", "delivery.postalCode",
		"delivery.zip", "delivery.zipCode", "delivery.address.postalCode", "delivery.address.postal_code",
	},
	domain.FieldShipToCountry: {"shipTo.country", "delivery.country"},

	domain.FieldContactName:       {"contact.name", "delivery.primary_contact", "delivery.contact_name"},
	domain.FieldContactPhone:      {"contact.phone", "delivery.contact_phone", "delivery.phone", "delivery.contactPhone"},
	domain.FieldContactEmail:      {"contact.email", "delivery.contact_email", "delivery.email", "delivery.contactEmail"},
	domain.FieldContactCCEmails:   {"contact.ccEmails", "delivery.contact_ccEmails", "delivery.ccEmails"},
	domain.FieldContactAddress1:   {"contact.address.address1", "delivery.contact_address_line_1"},
	domain.FieldContactCity:       {"contact.address.city", "delivery.contact_city"},
	domain.FieldContactState:      {"contact.address.state", "delivery.contact_state"},
	domain.FieldContactPostalCode: {"contact.address.postalCode", "delivery.contact_postal_code", "delivery.contact_zip"},
}

var targetPaths = []string{"supplier", "delivery.supplier", "vendor"}

var paymentPaths = []string{"payment"}

// Line item containers: the primary source may hold any of these, secondary
// sources only the first two.
var (
	primaryLinePaths   = []string{"fullOrderItems", "lineItems", "templateItems", "delivery.lineItems"}
	secondaryLinePaths = []string{"fullOrderItems", "lineItems"}
)

var linePaths = struct {
	itemCode, qty, uom, unitPrice, desc, option, lineNote, productID, productNumber []string
}{
	itemCode:      []string{"itemCode", "sku", "itemNumber", "itemnumber", "productNumber", "product_number"},
	qty:           []string{"qty", "quantity", "orderedQty.value", "orderedQty", "quantityOrdered"},
	uom:           []string{"uom", "unitOfMeasure", "orderedQty.uom", "unit_of_measure"},
	unitPrice:     []string{"unitPrice", "price", "unitPrice.value"},
	desc:          []string{"desc", "description", "itemDescription", "title", "name"},
	option:        []string{"option", "options", "variant"},
	lineNote:      []string{"lineNote", "lineComments", "comments", "comment"},
	productID:     []string{"productId", "product_id", "familyId", "family_id"},
	productNumber: []string{"productNumber", "product_number"},
}
