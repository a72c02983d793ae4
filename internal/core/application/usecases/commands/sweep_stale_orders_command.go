package commands

import (
	"errors"
	"time"

	"commerce/internal/pkg/guard"
)

var (
	ErrSweepStaleOrdersCommandIsNotConstructed = errors.New(
		"SweepStaleOrdersCommand must be created via NewSweepStaleOrdersCommand constructor",
	)
	ErrPaymentWindowIsInvalid = errors.New("payment window must be greater than 0")
)

// SweepStaleOrdersCommand represents a request to cancel every order that has
// been sitting in PENDING longer than the payment window.
type SweepStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	paymentWindow time.Duration

	guard guard.ConstructorGuard
}

// NewSweepStaleOrdersCommand creates a sweep command for the given payment
// window.
func NewSweepStaleOrdersCommand(paymentWindow time.Duration) (SweepStaleOrdersCommand, error) {
	sweepCommand := SweepStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setPaymentWindow(paymentWindow); err != nil {
		return SweepStaleOrdersCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleOrdersCommandIsNotConstructed)
}

// PaymentWindow returns how long an order may stay PENDING before the sweep
// cancels it.
func (c SweepStaleOrdersCommand) PaymentWindow() time.Duration {
	return c.paymentWindow
}

func (c *SweepStaleOrdersCommand) setPaymentWindow(paymentWindow time.Duration) error {
	if paymentWindow <= 0 {
		return ErrPaymentWindowIsInvalid
	}

	c.paymentWindow = paymentWindow
	return nil
}
