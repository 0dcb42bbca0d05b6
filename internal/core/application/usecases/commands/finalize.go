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

// finalizeTransition runs the shared tail of every workflow operation: it
// persists the mutated assignment record, recomputes the parent aggregate
// status through the one authoritative aggregator, persists the work order
// when something changed, and appends the audit entry, all inside the
// caller's transaction.
//
// Quote-type records never update the parent aggregate; for them only the
// record write and the audit entry happen.
//
// Every transition also stamps the per-person priority on records that never
// received one, so a record restored with priority 0 picks it up on its next
// transition regardless of which operation that is.
//
// The returned field changes describe the old/new work order snapshot for
// callers that report what changed to a client.
func finalizeTransition(
	ctx context.Context,
	uow UoW,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
	wo *workorder.WorkOrder,
	record *assignment.Record,
	actorID kernel.UUID,
	message string,
	now time.Time,
) ([]workorder.FieldChange, error) {
	before := wo.TakeSnapshot()

	if err := ensurePriority(ctx, uow.AssignmentRepository(), record); err != nil {
		return nil, err
	}

	if err := uow.AssignmentRepository().Update(ctx, record); err != nil {
		return nil, err
	}

	if !record.JobType().IsQuote() {
		records, err := uow.AssignmentRepository().GetByWorkOrder(ctx, wo.ID())
		if err != nil {
			return nil, err
		}

		resolution := aggregator.Recompute(wo, services.BuildCountVector(records))

		if resolution.StampCompletionDate {
			if err := wo.StampActualCompletionDate(now); err != nil {
				// The stamp is a best-effort side effect of the rollup;
				// the status change itself still goes through.
				logger.WarnContext(ctx, "failed to stamp actual completion date",
					"workOrder", wo.ID().String(), "error", err)
			}
		}

		if resolution.Changed {
			if err := wo.ApplyStatus(resolution.Target); err != nil {
				return nil, err
			}
		}

		if len(wo.Diff(before)) > 0 {
			if err := uow.WorkOrderRepository().Update(ctx, wo); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.ActivityLog().Append(ctx,
		ports.EntityTypeAssignment, record.ID(), message, actorID); err != nil {
		return nil, err
	}

	return wo.Diff(before), nil
}

// transitionMessage builds the audit entry for one status transition.
func transitionMessage(record *assignment.Record, oldStatus, reason string) string {
	msg := fmt.Sprintf("status changed from %s to %s", oldStatus, record.StatusString())
	if reason != "" {
		msg = fmt.Sprintf("%s; reason: %s", msg, reason)
	}
	return msg
}

// ensurePriority assigns the next per-person priority to a record whose
// priority is still unset, using the transaction-bound repository.
func ensurePriority(ctx context.Context, repo ports.AssignmentRepository, record *assignment.Record) error {
	if record.Priority() != 0 {
		return nil
	}

	next, err := repo.NextPriority(ctx, record.PersonID())
	if err != nil {
		return err
	}

	record.SetPriorityIfUnset(next)
	return nil
}
