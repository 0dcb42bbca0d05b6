package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrCancelAssignmentCommandIsNotConstructed = errors.New(
	"CancelAssignmentCommand must be created via NewCancelAssignmentCommand constructor",
)

// CancelAssignmentCommand cancels an assignment with a mandatory reason and
// optionally hands the job over to a replacement person in the same
// operation.
type CancelAssignmentCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID
	reason       string

	// replacementPersonID, when set, creates a fresh assignment for that
	// person carrying over the canceled record's work description
	replacementPersonID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelAssignmentCommand creates a command to cancel an assignment.
// replacementPersonID may be nil when no handover is wanted.
func NewCancelAssignmentCommand(
	assignmentID, actorID kernel.UUID,
	reason string,
	replacementPersonID *kernel.UUID,
) (CancelAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return CancelAssignmentCommand{}, err
	}
	if reason == "" {
		return CancelAssignmentCommand{}, errs.NewValueIsRequiredError("reason")
	}
	if replacementPersonID != nil {
		if err := replacementPersonID.Validate(); err != nil {
			return CancelAssignmentCommand{}, err
		}
	}

	return CancelAssignmentCommand{
		assignmentID:        assignmentID,
		actorID:             actorID,
		reason:              reason,
		replacementPersonID: replacementPersonID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to cancel.
func (c *CancelAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *CancelAssignmentCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the mandatory cancellation reason.
func (c *CancelAssignmentCommand) Reason() string { return c.reason }

// ReplacementPersonID returns the optional handover person, or nil.
func (c *CancelAssignmentCommand) ReplacementPersonID() *kernel.UUID { return c.replacementPersonID }

// Validate ensures the command was created through the constructor.
func (c *CancelAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelAssignmentCommandIsNotConstructed)
}
