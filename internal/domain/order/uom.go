package order

import (
	"sort"
	"strings"
)

// UnitOfMeasure describes a selling unit shown to users
type UnitOfMeasure struct {
	Code    string  `json:"code"`
	Label   string  `json:"label"`
	Tooltip string  `json:"tooltip"`
	Factor  float64 `json:"factor"`
}

// KnownUnits is the unit vocabulary offered when building orders by hand.
// Suppliers accept other codes too; this list is advisory.
var KnownUnits = map[string]UnitOfMeasure{
	"BNDL": {Code: "BNDL", Label: "BNDL", Tooltip: "Bundles", Factor: 0.3333},
	"SQ":   {Code: "SQ", Label: "SQ", Tooltip: "Squares", Factor: 1},
	"EA":   {Code: "EA", Label: "EA", Tooltip: "Each", Factor: 1},
	"LF":   {Code: "LF", Label: "LF", Tooltip: "Linear Ft.", Factor: 1},
	"RL":   {Code: "RL", Label: "RL", Tooltip: "Roll", Factor: 1},
	"BX":   {Code: "BX", Label: "BX", Tooltip: "Box", Factor: 1},
}

// CanonicalUOM trims and upper-cases a unit code, defaulting to EA
func CanonicalUOM(raw string) string {
	uom := strings.ToUpper(strings.TrimSpace(raw))
	if uom == "" {
		return DefaultUOM
	}
	return uom
}

// Units lists KnownUnits ordered by code
func Units() []UnitOfMeasure {
	units := make([]UnitOfMeasure, 0, len(KnownUnits))
	for _, u := range KnownUnits {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Code < units[j].Code })
	return units
}
