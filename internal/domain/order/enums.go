package order

import (
	"strings"

	"github.com/erp/supplierorders/internal/domain/shared/normalize"
)

// FulfillmentMethod describes how goods leave the branch
type FulfillmentMethod string

const (
	FulfillmentPickupBranch   FulfillmentMethod = "PICKUP_BRANCH"
	FulfillmentDeliveryGround FulfillmentMethod = "DELIVERY_GROUND"
	FulfillmentDeliveryRoof   FulfillmentMethod = "DELIVERY_ROOF"
	FulfillmentThirdParty     FulfillmentMethod = "THIRD_PARTY"
)

// DefaultFulfillmentMethod is used when no synonym matches
const DefaultFulfillmentMethod = FulfillmentDeliveryGround

var fulfillmentSynonyms = map[string]FulfillmentMethod{
	"pickup":        FulfillmentPickupBranch,
	"pickup_branch": FulfillmentPickupBranch,
	"cpu":           FulfillmentPickupBranch,
	"pick-up":       FulfillmentPickupBranch,
	"roof":          FulfillmentDeliveryRoof,
	"roofdrop":      FulfillmentDeliveryRoof,
	"delivery_roof": FulfillmentDeliveryRoof,
	"roof_drop":     FulfillmentDeliveryRoof,
	"edge":          FulfillmentDeliveryRoof,
	"edgedrop":      FulfillmentDeliveryRoof,
	"third_party":   FulfillmentThirdParty,
	"third-party":   FulfillmentThirdParty,
	"3rdparty":      FulfillmentThirdParty,
	"3rd_party":     FulfillmentThirdParty,
	"third":         FulfillmentThirdParty,
}

// ParseFulfillmentMethod maps free-form input onto the fulfillment vocabulary.
// Unknown input falls back to DELIVERY_GROUND.
func ParseFulfillmentMethod(raw string) FulfillmentMethod {
	if m, ok := fulfillmentSynonyms[normalize.Fold(strings.TrimSpace(raw))]; ok {
		return m
	}
	return DefaultFulfillmentMethod
}

// IsValid returns true if the method is part of the vocabulary
func (m FulfillmentMethod) IsValid() bool {
	switch m {
	case FulfillmentPickupBranch, FulfillmentDeliveryGround, FulfillmentDeliveryRoof, FulfillmentThirdParty:
		return true
	default:
		return false
	}
}

// String returns the string representation of FulfillmentMethod
func (m FulfillmentMethod) String() string {
	return string(m)
}

// TimeWindow is the requested delivery or pickup window
type TimeWindow string

const (
	TimeWindowAnytime   TimeWindow = "ANYTIME"
	TimeWindowMorning   TimeWindow = "MORNING"
	TimeWindowAfternoon TimeWindow = "AFTERNOON"
	TimeWindowSpecial   TimeWindow = "SPECIAL"
	TimeWindowExact     TimeWindow = "EXACT"
	TimeWindowRange     TimeWindow = "RANGE"
)

// DefaultTimeWindow is used when no synonym matches
const DefaultTimeWindow = TimeWindowAnytime

var timeWindowSynonyms = map[string]TimeWindow{
	"am":              TimeWindowMorning,
	"morning":         TimeWindowMorning,
	"pm":              TimeWindowAfternoon,
	"afternoon":       TimeWindowAfternoon,
	"special":         TimeWindowSpecial,
	"special request": TimeWindowSpecial,
	"special_request": TimeWindowSpecial,
	"exact":           TimeWindowExact,
	"specific":        TimeWindowExact,
	"st":              TimeWindowExact,
	"range":           TimeWindowRange,
	"tr":              TimeWindowRange,
}

// ParseTimeWindow maps free-form input onto the time window vocabulary.
// Unknown input falls back to ANYTIME.
func ParseTimeWindow(raw string) TimeWindow {
	if w, ok := timeWindowSynonyms[normalize.Fold(strings.TrimSpace(raw))]; ok {
		return w
	}
	return DefaultTimeWindow
}

// IsValid returns true if the window is part of the vocabulary
func (w TimeWindow) IsValid() bool {
	switch w {
	case TimeWindowAnytime, TimeWindowMorning, TimeWindowAfternoon,
		TimeWindowSpecial, TimeWindowExact, TimeWindowRange:
		return true
	default:
		return false
	}
}

// String returns the string representation of TimeWindow
func (w TimeWindow) String() string {
	return string(w)
}
