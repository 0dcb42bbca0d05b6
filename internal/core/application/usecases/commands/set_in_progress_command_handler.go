package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// SetInProgressCommandHandler starts (or resumes) work on an assignment.
type SetInProgressCommandHandler struct {
	uowFactory UoWFactory
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewSetInProgressCommandHandler creates a handler for start/resume operations.
func NewSetInProgressCommandHandler(
	uowFactory UoWFactory,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) SetInProgressCommandHandler {
	return SetInProgressCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the start command.
func (h SetInProgressCommandHandler) Handle(
	ctx context.Context,
	command SetInProgressCommand,
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

	oldStatus := record.StatusString()
	if err = record.Start(); err != nil {
		return nil, err
	}

	changes, err := finalizeTransition(ctx, uow, h.aggregator, h.logger,
		wo, record, command.ActorID(),
		transitionMessage(record, oldStatus, ""), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return changes, nil
}
