// Package notifications delivers order status updates to customers.
// The log dispatcher is the default sink; swapping in an email or push
// adapter only requires implementing ports.NotificationDispatcher.
package notifications

import (
	"context"
	"log/slog"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// LogDispatcher implements ports.NotificationDispatcher by writing structured
// log records. Callers treat dispatch as best-effort, so this sink never
// fails.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher that records notifications on the
// given logger.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{
		logger: logger.With("component", "notifications"),
	}
}

// NotifyStatusChange records the status change for the order's owner.
func (d *LogDispatcher) NotifyStatusChange(
	ctx context.Context, userID, orderID kernel.UUID, newStatus order.Status,
) error {
	d.logger.InfoContext(ctx, "order status changed",
		"user_id", userID.String(),
		"order_id", orderID.String(),
		"status", newStatus.String(),
	)
	return nil
}
