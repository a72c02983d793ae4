package jobs

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob periodically cancels orders that stayed PENDING past the
// payment window. Runs every ten minutes; a stale order is therefore
// cancelled at most one tick after its window elapses.
type StaleOrderJob struct {
	handler       commands.SweepStaleOrdersCommandHandler
	paymentWindow time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewStaleOrderJob creates a new job for sweeping stale orders.
func NewStaleOrderJob(
	handler commands.SweepStaleOrdersCommandHandler,
	paymentWindow time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:       handler,
		paymentWindow: paymentWindow,
		cron:          cron.New(),
		logger:        logger.With("component", "stale_order_job"),
	}
}

// Start begins the stale order sweep on a ten minute schedule.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewSweepStaleOrdersCommand(j.paymentWindow)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep misconfigured", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order sweep started (running every ten minutes)")
	return nil
}

// Stop stops the stale order sweep.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order sweep stopped")
}
