package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// CancelAssignmentCommandHandler cancels an assignment and, when a
// replacement person was named, hands the job over by creating a fresh
// assignment for them inside the same transaction. The replacement inherits
// the canceled record's job type and work description.
type CancelAssignmentCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.PersonDirectory
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewCancelAssignmentCommandHandler creates a handler for cancel operations.
func NewCancelAssignmentCommandHandler(
	uowFactory UoWFactory,
	directory ports.PersonDirectory,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) CancelAssignmentCommandHandler {
	return CancelAssignmentCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the cancel command.
func (h CancelAssignmentCommandHandler) Handle(
	ctx context.Context,
	command CancelAssignmentCommand,
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

	oldStatus := record.StatusString()
	if err = record.Cancel(command.Reason(), now); err != nil {
		return nil, err
	}

	var replacement *assignment.Record
	if command.ReplacementPersonID() != nil {
		replacement, err = h.createReplacement(ctx, uow, record, *command.ReplacementPersonID())
		if err != nil {
			return nil, err
		}
	}

	changes, err := finalizeTransition(ctx, uow, h.aggregator, h.logger,
		wo, record, command.ActorID(),
		transitionMessage(record, oldStatus, command.Reason()), now)
	if err != nil {
		return nil, err
	}

	if replacement != nil {
		message := fmt.Sprintf("%s %s assigned as %s replacing canceled assignment %s",
			replacement.PersonKind(), replacement.PersonID(), replacement.StatusString(), record.ID())
		if err = uow.ActivityLog().Append(ctx,
			ports.EntityTypeAssignment, replacement.ID(), message, command.ActorID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return changes, nil
}

// createReplacement builds and persists the handover assignment. It runs
// before the aggregate recompute so the new Assigned record participates in
// the rollup that follows the cancellation.
func (h CancelAssignmentCommandHandler) createReplacement(
	ctx context.Context,
	uow UoW,
	canceled *assignment.Record,
	personID kernel.UUID,
) (*assignment.Record, error) {
	kind, err := h.directory.KindOf(ctx, personID)
	if err != nil {
		return nil, err
	}

	replacement, err := assignment.NewRecord(
		kernel.NewUUID(),
		canceled.WorkOrderID(),
		personID,
		kind,
		canceled.JobType(),
		canceled.WorkDescription(),
	)
	if err != nil {
		return nil, err
	}

	if err = ensurePriority(ctx, uow.AssignmentRepository(), replacement); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, replacement); err != nil {
		return nil, err
	}

	return replacement, nil
}
