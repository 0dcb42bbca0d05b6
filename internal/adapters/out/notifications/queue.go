// Package notifications buffers completion events for asynchronous
// delivery. Dispatch is best-effort: events are handed off after the
// workflow transaction commits and a full buffer drops the event rather
// than blocking or failing the workflow.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

// CompletionEvent describes one committed completion transition.
type CompletionEvent struct {
	ActorID     kernel.UUID
	WorkOrderID kernel.UUID
	OccurredAt  time.Time
}

// Queue is a bounded in-process buffer implementing NotificationDispatcher.
// Producers are command handlers on their request goroutines; the consumer
// is the relay job.
type Queue struct {
	events chan CompletionEvent
	logger *slog.Logger
}

// NewQueue creates a buffer holding at most capacity undelivered events.
func NewQueue(capacity int, logger *slog.Logger) *Queue {
	return &Queue{
		events: make(chan CompletionEvent, capacity),
		logger: logger.With("component", "notification_queue"),
	}
}

// OnCompleted enqueues a completion event. Never blocks: when the buffer is
// full the event is dropped with a warning.
func (q *Queue) OnCompleted(actorID kernel.UUID, workOrderID kernel.UUID) {
	event := CompletionEvent{
		ActorID:     actorID,
		WorkOrderID: workOrderID,
		OccurredAt:  time.Now(),
	}

	select {
	case q.events <- event:
	default:
		q.logger.WarnContext(context.Background(), "notification buffer full, event dropped",
			"workOrder", workOrderID.String())
	}
}

// Drain removes and returns up to max buffered events without blocking.
func (q *Queue) Drain(max int) []CompletionEvent {
	drained := make([]CompletionEvent, 0, max)
	for len(drained) < max {
		select {
		case event := <-q.events:
			drained = append(drained, event)
		default:
			return drained
		}
	}
	return drained
}
