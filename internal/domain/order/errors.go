package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPrecondition is wrapped by every PreconditionError. It marks a caller
// contract violation: an order reached a compiler without passing the builder.
var ErrPrecondition = errors.New("order: precondition violated")

// PreconditionError lists the contract checks an order failed
type PreconditionError struct {
	Target     Target
	Violations []string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s compile precondition failed: %s",
		ErrPrecondition.Error(), e.Target, strings.Join(e.Violations, "; "))
}

// Unwrap allows errors.Is(err, ErrPrecondition)
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// CheckPreconditions verifies the invariants every compiler relies on:
// non-empty account number and branch, at least one line item, and enum
// values drawn from their vocabularies. Blank enums are left to the
// compilers' defaults.
func CheckPreconditions(o *UnifiedOrder) error {
	if o == nil {
		return &PreconditionError{Violations: []string{"order is nil"}}
	}

	var violations []string
	if strings.TrimSpace(o.AccountNumber) == "" {
		violations = append(violations, "accountNumber required")
	}
	if strings.TrimSpace(o.BranchID) == "" {
		violations = append(violations, "branchId required")
	}
	if len(o.LineItems) == 0 {
		violations = append(violations, "at least one line item required")
	}
	if o.TimeWindow != "" && !o.TimeWindow.IsValid() {
		violations = append(violations, fmt.Sprintf("unknown timeWindow %q", o.TimeWindow))
	}
	if o.FulfillmentMethod != "" && !o.FulfillmentMethod.IsValid() {
		violations = append(violations, fmt.Sprintf("unknown fulfillmentMethod %q", o.FulfillmentMethod))
	}
	if len(violations) > 0 {
		return &PreconditionError{Target: o.Target, Violations: violations}
	}
	return nil
}
