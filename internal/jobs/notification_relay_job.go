package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fieldservice/internal/adapters/out/notifications"
)

// relayBatchSize limits how many events one relay tick delivers.
const relayBatchSize = 64

// NotificationRelayJob drains the completion event buffer and delivers each
// event through the configured sender. Runs every second so completions
// reach their consumers with minimal lag.
type NotificationRelayJob struct {
	queue  *notifications.Queue
	sender notifications.Sender
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNotificationRelayJob creates a relay for the given buffer and sender.
func NewNotificationRelayJob(
	queue *notifications.Queue,
	sender notifications.Sender,
	logger *slog.Logger,
) *NotificationRelayJob {
	return &NotificationRelayJob{
		queue:  queue,
		sender: sender,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "notification_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		for _, event := range j.queue.Drain(relayBatchSize) {
			if err := j.sender.Send(ctx, event); err != nil {
				// Delivery is best-effort; a failed event is logged and
				// dropped, not retried.
				j.logger.ErrorContext(ctx, "failed to deliver completion notification",
					"workOrder", event.WorkOrderID.String(), "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *NotificationRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
