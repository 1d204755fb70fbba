package supplier

import "github.com/erp/supplierorders/internal/domain/order"

var abcDeliveryService = map[order.FulfillmentMethod]string{
	order.FulfillmentPickupBranch:   "CPU",
	order.FulfillmentDeliveryGround: "OTG",
	order.FulfillmentDeliveryRoof:   "OTR",
	order.FulfillmentThirdParty:     "TPC",
}

var srsShippingMethod = map[order.FulfillmentMethod]string{
	order.FulfillmentPickupBranch:   "Customer Pickup",
	order.FulfillmentDeliveryGround: "Ground Drop",
	order.FulfillmentDeliveryRoof:   "Rooftop",
	order.FulfillmentThirdParty:     "Third-Party Carrier",
}

var beaconShippingMethod = map[order.FulfillmentMethod]string{
	order.FulfillmentPickupBranch:   "P",
	order.FulfillmentDeliveryGround: "D",
	order.FulfillmentDeliveryRoof:   "D",
	order.FulfillmentThirdParty:     "D",
}

var abcAppointmentCode = map[order.TimeWindow]string{
	order.TimeWindowAnytime:   "AT",
	order.TimeWindowMorning:   "AM",
	order.TimeWindowAfternoon: "PM",
	order.TimeWindowSpecial:   "AT",
	order.TimeWindowExact:     "ST",
	order.TimeWindowRange:     "TR",
}

var srsDeliveryTime = map[order.TimeWindow]string{
	order.TimeWindowAnytime:   "Anytime",
	order.TimeWindowMorning:   "Morning",
	order.TimeWindowAfternoon: "Afternoon",
	order.TimeWindowSpecial:   "Special",
	order.TimeWindowExact:     "Special",
	order.TimeWindowRange:     "Special",
}

var beaconPickupTime = map[order.TimeWindow]string{
	order.TimeWindowAnytime:   "Anytime",
	order.TimeWindowMorning:   "Morning",
	order.TimeWindowAfternoon: "Afternoon",
	order.TimeWindowSpecial:   "Special Request",
	order.TimeWindowExact:     "Special Request",
	order.TimeWindowRange:     "Special Request",
}

// lookup returns table[key], or def for values outside the vocabulary
func lookup[K comparable](table map[K]string, key K, def string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return def
}
