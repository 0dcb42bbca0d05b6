package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// ConfirmAssignmentCommandHandler confirms an assignment on behalf of its
// assigned person and stamps the confirmation timestamp.
type ConfirmAssignmentCommandHandler struct {
	uowFactory UoWFactory
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewConfirmAssignmentCommandHandler creates a handler for confirm operations.
func NewConfirmAssignmentCommandHandler(
	uowFactory UoWFactory,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) ConfirmAssignmentCommandHandler {
	return ConfirmAssignmentCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the confirm command. The actor-must-be-assignee guard
// lives in the domain record; a mismatch aborts before any mutation.
func (h ConfirmAssignmentCommandHandler) Handle(
	ctx context.Context,
	command ConfirmAssignmentCommand,
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

	record, err := uow.AssignmentRepository().Get(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, record.WorkOrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	confirmedAt := now
	if command.ConfirmedAt() != nil {
		confirmedAt = *command.ConfirmedAt()
	}

	oldStatus := record.StatusString()
	if err = record.Confirm(command.ActorID(), confirmedAt); err != nil {
		return nil, err
	}

	changes, err := finalizeTransition(ctx, uow, h.aggregator, h.logger,
		wo, record, command.ActorID(),
		transitionMessage(record, oldStatus, ""), now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return changes, nil
}
