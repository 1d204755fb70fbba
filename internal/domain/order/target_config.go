package order

// Canonical field keys addressable from a target configuration document
const (
	FieldAccountNumber     = "accountNumber"
	FieldBranchID          = "branchId"
	FieldSellingBranchID   = "sellingBranchId"
	FieldJobName           = "jobName"
	FieldJobNumber         = "jobNumber"
	FieldPONumber          = "poNumber"
	FieldPONote            = "poNote"
	FieldRequestedDate     = "requestedDate"
	FieldTimeWindow        = "timeWindow"
	FieldExactFrom         = "exactFrom"
	FieldExactTo           = "exactTo"
	FieldFulfillmentMethod = "fulfillmentMethod"
	FieldNotes             = "notes"
	FieldCheckAvailability = "checkAvailability"
	FieldHoldOrder         = "holdOrder"
	FieldRequestID         = "requestId"

	FieldShipToName       = "shipTo.name"
	FieldShipToAddress1   = "shipTo.address1"
	FieldShipToAddress2   = "shipTo.address2"
	FieldShipToAddress3   = "shipTo.address3"
	FieldShipToCity       = "shipTo.city"
	FieldShipToState      = "shipTo.state"
	FieldShipToPostalCode = "shipTo.postalCode"
	FieldShipToCountry    = "shipTo.country"

	FieldContactName       = "contact.name"
	FieldContactPhone      = "contact.phone"
	FieldContactEmail      = "contact.email"
	FieldContactCCEmails   = "contact.ccEmails"
	FieldContactAddress1   = "contact.address.address1"
	FieldContactCity       = "contact.address.city"
	FieldContactState      = "contact.address.state"
	FieldContactPostalCode = "contact.address.postalCode"
)

// TargetConfig is the per-supplier section of the target configuration
// document. Every map is optional.
type TargetConfig struct {
	// FieldPaths replaces the built-in lookup paths for a field
	FieldPaths     map[string][]string `yaml:"fieldPaths" json:"fieldPaths"`
	// RequiredFields marks fields whose absence blocks compilation
	RequiredFields map[string]bool     `yaml:"requiredFields" json:"requiredFields"`
	// DefaultValues applies when no source holds the field
	DefaultValues  map[string]any      `yaml:"defaultValues" json:"defaultValues"`
	// Messages overrides the error text for a missing required field
	Messages       map[string]string   `yaml:"messages" json:"messages"`
}

// Paths returns the override paths for key, or fallback when none are set
func (c TargetConfig) Paths(key string, fallback []string) []string {
	if paths, ok := c.FieldPaths[key]; ok && len(paths) > 0 {
		return paths
	}
	return fallback
}

// IsRequired reports whether key is marked required
func (c TargetConfig) IsRequired(key string) bool {
	return c.RequiredFields[key]
}

// Message returns the configured message for key, or def
func (c TargetConfig) Message(key, def string) string {
	if msg := c.Messages[key]; msg != "" {
		return msg
	}
	return def
}

// TargetCatalog maps each supported target to its configuration
type TargetCatalog map[Target]TargetConfig

// Lookup returns the configuration for target. Targets absent from the
// catalog get an empty configuration.
func (c TargetCatalog) Lookup(target Target) TargetConfig {
	return c[target]
}

// Supports reports whether target is configured in the catalog
func (c TargetCatalog) Supports(target Target) bool {
	_, ok := c[target]
	return ok
}

// DefaultCatalog requires account and branch for every supplier
func DefaultCatalog() TargetCatalog {
	catalog := make(TargetCatalog, 3)
	for _, t := range AllTargets() {
		catalog[t] = TargetConfig{
			RequiredFields: map[string]bool{
				FieldAccountNumber: true,
				FieldBranchID:      true,
			},
		}
	}
	return catalog
}
