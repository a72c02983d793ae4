package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/ports"
)

const staleCancellationReason = "Automatically cancelled: payment was not completed in time"

// SweepStaleOrdersCommandHandler cancels PENDING orders whose payment window
// has elapsed. One order failing to cancel does not stop the sweep; the whole
// batch commits together.
type SweepStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewSweepStaleOrdersCommandHandler creates a handler for the stale order
// sweep.
func NewSweepStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) SweepStaleOrdersCommandHandler {
	return SweepStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "sweep_stale_orders"),
	}
}

// Handle cancels every PENDING order created before now minus the payment
// window.
func (h *SweepStaleOrdersCommandHandler) Handle(ctx context.Context, cmd SweepStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()
	staleOrders, err := orderRepo.GetAllPendingBefore(ctx, now.Add(-cmd.PaymentWindow()))
	if err != nil {
		return err
	}

	cancelled := staleOrders[:0]
	for _, aggregate := range staleOrders {
		if err = aggregate.Cancel(staleCancellationReason, now); err != nil {
			h.logger.Warn("skipping stale order that could not be cancelled",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		cancelled = append(cancelled, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range cancelled {
		if err = h.notifier.NotifyStatusChange(ctx, aggregate.UserID(), aggregate.ID(), aggregate.Status()); err != nil {
			h.logger.Warn("failed to dispatch stale cancellation notification",
				"order_id", aggregate.ID().String(), "error", err)
		}
	}

	return nil
}
