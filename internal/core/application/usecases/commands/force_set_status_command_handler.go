package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// ForceSetStatusCommandHandler applies the administrative status override.
// The target key is resolved against the record's own vocabulary: work and
// recall assignments accept wo_vendor_status keys, quotes accept
// wo_rfq_status keys. An unknown or mismatched key fails
// UnknownStatusLabel before anything is touched.
type ForceSetStatusCommandHandler struct {
	uowFactory UoWFactory
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

// NewForceSetStatusCommandHandler creates a handler for status overrides.
func NewForceSetStatusCommandHandler(
	uowFactory UoWFactory,
	aggregator services.StatusAggregator,
	logger *slog.Logger,
) ForceSetStatusCommandHandler {
	return ForceSetStatusCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Handle processes the override. The aggregate recompute still runs
// afterwards, so forcing a work assignment to Completed rolls the parent
// work order up exactly as a regular completion would.
func (h ForceSetStatusCommandHandler) Handle(
	ctx context.Context,
	command ForceSetStatusCommand,
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

	if record.JobType().IsQuote() {
		target, keyErr := assignment.QuoteStatusFromKey(command.TargetKey())
		if keyErr != nil {
			return nil, keyErr
		}
		if err = record.ForceSetQuote(target, now); err != nil {
			return nil, err
		}
	} else {
		target, keyErr := assignment.WorkStatusFromKey(command.TargetKey())
		if keyErr != nil {
			return nil, keyErr
		}
		if err = record.ForceSetWork(target, now); err != nil {
			return nil, err
		}
	}

	message := fmt.Sprintf("status force-set from %s to %s", oldStatus, record.StatusString())

	changes, err := finalizeTransition(ctx, uow, h.aggregator, h.logger,
		wo, record, command.ActorID(), message, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return changes, nil
}
