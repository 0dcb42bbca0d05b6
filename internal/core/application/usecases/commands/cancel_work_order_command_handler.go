package commands

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/ports"
)

// CancelWorkOrderCommandHandler cancels a work order. The canceled status
// is a freeze: every still-active assignment is disabled in the same
// transaction, and later assignment transitions can no longer pull the
// aggregate out of Canceled.
type CancelWorkOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelWorkOrderCommandHandler creates a handler for work order cancellation.
func NewCancelWorkOrderCommandHandler(uowFactory UoWFactory) CancelWorkOrderCommandHandler {
	return CancelWorkOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation. Canceling an already-canceled work
// order fails AlreadyInTargetState and writes nothing.
func (h CancelWorkOrderCommandHandler) Handle(
	ctx context.Context,
	command CancelWorkOrderCommand,
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

	wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, command.WorkOrderID())
	if err != nil {
		return nil, err
	}

	before := wo.TakeSnapshot()
	if err = wo.Cancel(); err != nil {
		return nil, err
	}

	now := time.Now()

	records, err := uow.AssignmentRepository().GetByWorkOrder(ctx, wo.ID())
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if !record.IsActive() {
			continue
		}

		record.Disable(now)
		if err = uow.AssignmentRepository().Update(ctx, record); err != nil {
			return nil, err
		}
	}

	if err = uow.WorkOrderRepository().Update(ctx, wo); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("work order canceled; reason: %s", command.Reason())
	if err = uow.ActivityLog().Append(ctx,
		ports.EntityTypeWorkOrder, wo.ID(), message, command.ActorID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return wo.Diff(before), nil
}
