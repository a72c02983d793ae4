package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change is not
// reachable from the order's current status. Callers classify the failure
// with errors.Is.
var ErrInvalidTransition = fmt.Errorf("status transition is not allowed")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfilment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │                │
//	   ├────────────┴──> Cancelled                 │
//	   └──────────────────────────┴────────────────┴──> Refunded
//
// Delivered, Cancelled, and Refunded are terminal: no further transitions
// are allowed out of them. Refunded is reachable from every non-terminal
// status because an administrator may refund after an external payment
// reversal at any point before completion.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at order placement.
	Pending

	// Confirmed indicates the order was acknowledged (typically after payment).
	Confirmed

	// Preparing indicates the order is being picked and packed.
	Preparing

	// OutForDelivery indicates the order left for the delivery address.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before fulfilment. Terminal.
	Cancelled

	// Refunded indicates the order was refunded by an administrator. Terminal.
	Refunded
)

// getStatusStrings returns the wire/persistence names for every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		Preparing:      "PREPARING",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Refunded:       "REFUNDED",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "PENDING",
		Confirmed:      "CONFIRMED",
		Preparing:      "PREPARING",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Refunded:       "REFUNDED",
	}
}

// transitions is the legal status graph. A status maps to the set of statuses
// reachable from it; terminal statuses map to an empty set.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled, Refunded},
		Confirmed:      {Preparing, Cancelled, Refunded},
		Preparing:      {OutForDelivery, Refunded},
		OutForDelivery: {Delivered, Refunded},
		Delivered:      {},
		Cancelled:      {},
		Refunded:       {},
	}
}

// StatusFromString parses the wire form ("PENDING", "OUT_FOR_DELIVERY", ...)
// into a Status. Returns a validation error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "CONFIRMED", ...).
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// CanTransitionTo reports whether target is directly reachable from s
// according to the status graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the move from s to target and returns target.
// Returns ErrInvalidTransition (wrapped with both statuses) when target
// is not reachable from s.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
