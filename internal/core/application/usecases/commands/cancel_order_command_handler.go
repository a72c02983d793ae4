package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// CancelOrderCommandHandler handles customer-initiated cancellation.
// The order is loaded scoped to the requesting user, so a missing order and
// another user's order both fail with the same object-not-found error.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for customer cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle loads the user's order, applies the cancellation, persists it, and
// returns the cancelled aggregate. Fails with order.ErrOrderNotCancellable
// once preparation has started.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUser(ctx, cmd.UserID(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.notifier.NotifyStatusChange(ctx, aggregate.UserID(), aggregate.ID(), aggregate.Status()); err != nil {
		h.logger.Warn("failed to dispatch cancellation notification",
			"order_id", aggregate.ID().String(), "error", err)
	}

	return aggregate, nil
}
