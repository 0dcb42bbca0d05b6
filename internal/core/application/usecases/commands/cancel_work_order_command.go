package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrCancelWorkOrderCommandIsNotConstructed = errors.New(
	"CancelWorkOrderCommand must be created via NewCancelWorkOrderCommand constructor",
)

// CancelWorkOrderCommand cancels a work order outright and disables all of
// its still-active assignments.
type CancelWorkOrderCommand struct {
	workOrderID kernel.UUID
	actorID     kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

// NewCancelWorkOrderCommand creates a command to cancel a work order.
func NewCancelWorkOrderCommand(
	workOrderID, actorID kernel.UUID,
	reason string,
) (CancelWorkOrderCommand, error) {
	if err := errors.Join(workOrderID.Validate(), actorID.Validate()); err != nil {
		return CancelWorkOrderCommand{}, err
	}
	if reason == "" {
		return CancelWorkOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return CancelWorkOrderCommand{
		workOrderID: workOrderID,
		actorID:     actorID,
		reason:      reason,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// WorkOrderID returns the work order to cancel.
func (c *CancelWorkOrderCommand) WorkOrderID() kernel.UUID { return c.workOrderID }

// ActorID returns the acting user.
func (c *CancelWorkOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the mandatory cancellation reason.
func (c *CancelWorkOrderCommand) Reason() string { return c.reason }

// Validate ensures the command was created through the constructor.
func (c *CancelWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelWorkOrderCommandIsNotConstructed)
}
