package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// CompleteAssignmentCommandHandler completes a single assignment.
//
// Two up-front guards run before any state is touched:
//   - when the customer configuration requires a completion code and none
//     was supplied, the operation fails PreconditionMissing
//   - when this is the last active non-completed work assignment and the
//     work order has no actual completion date, operator-origin requests
//     fail LastAssignmentMissingCompletionDate (mobile bypasses this)
//
// On success a best-effort completion notification is dispatched after the
// transaction commits.
type CompleteAssignmentCommandHandler struct {
	uowFactory UoWFactory
	policy     ports.CustomerPolicy
	notifier   ports.NotificationDispatcher
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewCompleteAssignmentCommandHandler creates a handler for completion operations.
func NewCompleteAssignmentCommandHandler(
	uowFactory UoWFactory,
	policy ports.CustomerPolicy,
	notifier ports.NotificationDispatcher,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) CompleteAssignmentCommandHandler {
	return CompleteAssignmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the completion command.
func (h CompleteAssignmentCommandHandler) Handle(
	ctx context.Context,
	command CompleteAssignmentCommand,
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

	if err = ensureCompletionCode(ctx, h.policy, wo, command.CompletionCode()); err != nil {
		return nil, err
	}

	if err = ensureCompletionDate(ctx, uow, wo, record, command.Origin()); err != nil {
		return nil, err
	}

	now := time.Now()
	completedAt := now
	if command.CompletedAt() != nil {
		completedAt = *command.CompletedAt()
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

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.OnCompleted(command.ActorID(), wo.ID())
	return changes, nil
}

// ensureCompletionCode fails PreconditionMissing when the customer
// configuration requires a completion code and none was supplied. Shared by
// single and bulk completion, checked once before any state is touched.
func ensureCompletionCode(
	ctx context.Context,
	policy ports.CustomerPolicy,
	wo *workorder.WorkOrder,
	completionCode string,
) error {
	if completionCode != "" {
		return nil
	}

	required, err := policy.RequiresCompletionCode(ctx, wo.ID())
	if err != nil {
		return err
	}
	if required {
		return errs.NewPreconditionMissingError(errs.PreconditionCompletionCode)
	}
	return nil
}

// ensureCompletionDate refuses operator-origin completion of the last active
// non-completed work assignment while the work order has no actual
// completion date. This prevents marking a work order implicitly complete
// before an operator records the real date. Quote completions never touch
// the parent aggregate and are exempt.
func ensureCompletionDate(
	ctx context.Context,
	uow UoW,
	wo *workorder.WorkOrder,
	record *assignment.Record,
	origin Origin,
) error {
	if origin == OriginMobile || record.JobType().IsQuote() || wo.ActualCompletionDate() != nil {
		return nil
	}

	records, err := uow.AssignmentRepository().GetByWorkOrder(ctx, wo.ID())
	if err != nil {
		return err
	}

	vector := services.BuildCountVector(records)
	remaining := vector.Active - vector.Count(assignment.WorkCompleted)
	if remaining <= 1 {
		return errs.NewLastAssignmentMissingCompletionDateError(wo.ID().String())
	}
	return nil
}
