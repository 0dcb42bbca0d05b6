package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
)

// IssueAssignmentCommandHandler issues an assignment to its person.
//
// Issuing a work assignment requires a non-empty work description. When the
// record carries none, the customer policy may supply an auto-fill text;
// without one the transition fails before any state is touched.
type IssueAssignmentCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.CustomerPolicy
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewIssueAssignmentCommandHandler creates a handler for issue operations.
func NewIssueAssignmentCommandHandler(
	uowFactory UoWFactory,
	policy ports.CustomerPolicy,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) IssueAssignmentCommandHandler {
	return IssueAssignmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the issue command: locks the parent work order, applies
// the transition, recomputes the aggregate, and appends the audit entry, all
// in one transaction.
func (h IssueAssignmentCommandHandler) Handle(
	ctx context.Context,
	command IssueAssignmentCommand,
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

	autoFill, err := h.policy.AutoFillWorkDescription(ctx, wo.ID())
	if err != nil {
		return nil, err
	}

	oldStatus := record.StatusString()
	if err = record.Issue(autoFill); err != nil {
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
