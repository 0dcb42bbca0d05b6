package commands

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// AssignPersonCommandHandler creates a new assignment record for a person on
// a work order and recomputes the parent aggregate status.
//
// The person's kind is resolved through the PersonDirectory; it determines
// which completion guard applies for the rest of the assignment's life.
type AssignPersonCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.PersonDirectory
	aggregator services.StatusAggregator
}

// NewAssignPersonCommandHandler creates a handler for person assignment operations.
func NewAssignPersonCommandHandler(
	uowFactory UoWFactory,
	directory ports.PersonDirectory,
	aggregator services.StatusAggregator,
) AssignPersonCommandHandler {
	return AssignPersonCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		aggregator: aggregator,
	}
}

// Handle processes the assignment command. The new record starts in Assigned
// (RfqAssigned for quotes), receives the next per-person priority, and the
// parent work order's aggregate status is recomputed within the same
// transaction.
func (h AssignPersonCommandHandler) Handle(
	ctx context.Context,
	command AssignPersonCommand,
) ([]workorder.FieldChange, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	kind, err := h.directory.KindOf(ctx, command.PersonID())
	if err != nil {
		return nil, err
	}

	record, err := assignment.NewRecord(
		kernel.NewUUID(),
		command.WorkOrderID(),
		command.PersonID(),
		kind,
		command.JobType(),
		command.WorkDescription(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, command.WorkOrderID())
	if err != nil {
		return nil, err
	}

	if err = ensurePriority(ctx, uow.AssignmentRepository(), record); err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	before := wo.TakeSnapshot()

	if !record.JobType().IsQuote() {
		records, recordsErr := uow.AssignmentRepository().GetByWorkOrder(ctx, wo.ID())
		if recordsErr != nil {
			return nil, recordsErr
		}

		resolution := h.aggregator.Recompute(wo, services.BuildCountVector(records))
		if resolution.Changed {
			if err = wo.ApplyStatus(resolution.Target); err != nil {
				return nil, err
			}
			if err = uow.WorkOrderRepository().Update(ctx, wo); err != nil {
				return nil, err
			}
		}
	}

	message := fmt.Sprintf("%s %s assigned as %s",
		kind, command.PersonID(), record.StatusString())
	if err = uow.ActivityLog().Append(ctx,
		ports.EntityTypeAssignment, record.ID(), message, command.ActorID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return wo.Diff(before), nil
}
