package commands

import (
	"errors"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an operator request to move an order to
// a new lifecycle status. Moving to CANCELLED requires a cancellation reason;
// for every other target the reason is ignored.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	targetStatus       order.Status
	cancellationReason string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to change an order's status.
// The target status must be one of the known lifecycle status strings.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	targetStatus string,
	cancellationReason string,
) (UpdateOrderStatusCommand, error) {
	statusCommand := UpdateOrderStatusCommand{
		cancellationReason: strings.TrimSpace(cancellationReason),
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTargetStatus(targetStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested lifecycle status.
func (c UpdateOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// CancellationReason returns the operator-supplied reason, used only when the
// target status is CANCELLED.
func (c UpdateOrderStatusCommand) CancellationReason() string {
	return c.cancellationReason
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setTargetStatus(targetStatus string) error {
	status, err := order.StatusFromString(targetStatus)
	if err != nil {
		return err
	}

	c.targetStatus = status
	return nil
}
