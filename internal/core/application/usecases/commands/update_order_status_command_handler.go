package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// UpdateOrderStatusCommandHandler moves an order along its lifecycle.
// The aggregate enforces the transition graph: an illegal move fails with
// order.ErrInvalidTransition and nothing is persisted.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_order_status"),
	}
}

// Handle loads the order, applies the transition, persists the change, and
// returns the updated aggregate.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if cmd.TargetStatus() == order.Cancelled {
		err = aggregate.Cancel(cmd.CancellationReason(), now)
	} else {
		err = aggregate.TransitionTo(cmd.TargetStatus(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.notifier.NotifyStatusChange(ctx, aggregate.UserID(), aggregate.ID(), aggregate.Status()); err != nil {
		h.logger.Warn("failed to dispatch status change notification",
			"order_id", aggregate.ID().String(), "status", aggregate.Status().String(), "error", err)
	}

	return aggregate, nil
}
