package commands

import (
	"errors"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout request: convert the user's active
// cart into an order delivered to one of their saved addresses.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, addressID, "COD", "SAVE30", "leave at the door")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed", result.Order.OrderNumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID              kernel.UUID
	addressID           kernel.UUID
	paymentMethod       order.PaymentMethod
	couponCode          string
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// The coupon code and special instructions are optional; the payment method
// must be one of the supported method strings.
func NewCreateOrderCommand(
	userID kernel.UUID,
	addressID kernel.UUID,
	paymentMethod string,
	couponCode string,
	specialInstructions string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		couponCode:          strings.TrimSpace(couponCode),
		specialInstructions: strings.TrimSpace(specialInstructions),
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setUserID(userID),
		orderCommand.setAddressID(addressID),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the identifier of the user placing the order.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// AddressID returns the delivery address identifier.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// CouponCode returns the optional coupon code, empty when none was supplied.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

// SpecialInstructions returns the optional delivery instructions.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	c.addressID = addressID
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	method, err := order.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
