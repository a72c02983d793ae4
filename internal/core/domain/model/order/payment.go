package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
// It is fixed at order creation.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// PaymentMethodFromString parses the wire form into a PaymentMethod.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if err := method.Validate(); err != nil {
		return "", err
	}
	return method, nil
}

// Validate checks that the payment method is one of the supported values.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodCOD, PaymentMethodWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%q is not a supported payment method", string(m)))
	}
}

// String returns the wire name of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus tracks the payment lifecycle of an order. It has an
// independent lifecycle driven by the external payment collaborator;
// the core stores it but never derives order status from it.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentStatusFromString parses the wire form into a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the payment status is one of the known values.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	return string(s)
}
