package order

import "strings"

// Target identifies the supplier an order is compiled for
type Target string

const (
	// TargetABC is ABC Supply
	TargetABC Target = "ABC"
	// TargetBeacon is Beacon Building Products
	TargetBeacon Target = "BEACON"
	// TargetSRS is SRS Distribution (Roof Hub)
	TargetSRS Target = "SRS"
)

// DefaultTarget is used whenever the requested supplier is not recognized
const DefaultTarget = TargetABC

// IsValid returns true if the target is one of the supported suppliers
func (t Target) IsValid() bool {
	switch t {
	case TargetABC, TargetBeacon, TargetSRS:
		return true
	default:
		return false
	}
}

// String returns the string representation of Target
func (t Target) String() string {
	return string(t)
}

// DisplayName returns a human-readable supplier name
func (t Target) DisplayName() string {
	switch t {
	case TargetABC:
		return "ABC Supply"
	case TargetBeacon:
		return "Beacon"
	case TargetSRS:
		return "SRS Distribution"
	default:
		return string(t)
	}
}

// AllTargets returns every supported target
func AllTargets() []Target {
	return []Target{TargetABC, TargetBeacon, TargetSRS}
}

// ParseTarget canonicalizes a supplier name. The second return value is false
// when raw does not name a supported supplier, in which case the canonical
// (trimmed, upper-cased) spelling is still returned for messages.
func ParseTarget(raw string) (Target, bool) {
	t := Target(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.IsValid()
}
