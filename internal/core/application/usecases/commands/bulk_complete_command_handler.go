package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// BulkCompleteCommandHandler completes a batch of assignments inside a
// single transaction. Items are processed in request order; the first
// failure rolls everything back. Work orders are locked once and reused
// across items that share them, so each item sees the rollup effect of the
// items before it.
type BulkCompleteCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.CustomerPolicy
	notifier   ports.NotificationDispatcher
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewBulkCompleteCommandHandler creates a handler for batch completion.
func NewBulkCompleteCommandHandler(
	uowFactory UoWFactory,
	policy ports.CustomerPolicy,
	notifier ports.NotificationDispatcher,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) BulkCompleteCommandHandler {
	return BulkCompleteCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the batch. The returned changes aggregate the work order
// field changes produced across the whole batch.
func (h BulkCompleteCommandHandler) Handle(
	ctx context.Context,
	command BulkCompleteCommand,
) ([]workorder.FieldChange, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	completedAt := now
	if command.CompletedAt() != nil {
		completedAt = *command.CompletedAt()
	}

	// One locked instance per work order for the whole batch.
	lockedOrders := make(map[kernel.UUID]*workorder.WorkOrder)
	var allChanges []workorder.FieldChange

	for _, assignmentID := range command.AssignmentIDs() {
		record, err := uow.AssignmentRepository().Get(ctx, assignmentID)
		if err != nil {
			return nil, err
		}

		wo, locked := lockedOrders[record.WorkOrderID()]
		if !locked {
			wo, err = uow.WorkOrderRepository().GetForUpdate(ctx, record.WorkOrderID())
			if err != nil {
				return nil, err
			}
			lockedOrders[record.WorkOrderID()] = wo

			if err = ensureCompletionCode(ctx, h.policy, wo, command.CompletionCode()); err != nil {
				return nil, err
			}
		}

		if err = ensureCompletionDate(ctx, uow, wo, record, command.Origin()); err != nil {
			return nil, err
		}

		oldStatus := record.StatusString()
		if err = record.Complete(completedAt, command.CompletionCode()); err != nil {
			return nil, err
		}

		changes, err := finalizeTransition(ctx, uow, h.aggregator, h.logger,
			wo, record, command.ActorID(),
			transitionMessage(record, oldStatus, ""), now)
		if err != nil {
			return nil, err
		}

		allChanges = append(allChanges, changes...)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	for workOrderID := range lockedOrders {
		h.notifier.OnCompleted(command.ActorID(), workOrderID)
	}

	return allChanges, nil
}
