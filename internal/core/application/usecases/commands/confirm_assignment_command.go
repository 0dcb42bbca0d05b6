package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrConfirmAssignmentCommandIsNotConstructed = errors.New(
	"ConfirmAssignmentCommand must be created via NewConfirmAssignmentCommand constructor",
)

// ConfirmAssignmentCommand moves an assignment from Issued to Confirmed
// (RfqConfirmed for quotes). For work assignments the actor must be the
// assigned person.
type ConfirmAssignmentCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID

	// confirmedAt overrides the confirmation timestamp; nil means now
	confirmedAt *time.Time

	guard guard.ConstructorGuard
}

// NewConfirmAssignmentCommand creates a command to confirm an assignment.
// confirmedAt may be nil to stamp the current time.
func NewConfirmAssignmentCommand(
	assignmentID, actorID kernel.UUID,
	confirmedAt *time.Time,
) (ConfirmAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return ConfirmAssignmentCommand{}, err
	}

	return ConfirmAssignmentCommand{
		assignmentID: assignmentID,
		actorID:      actorID,
		confirmedAt:  confirmedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to confirm.
func (c *ConfirmAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *ConfirmAssignmentCommand) ActorID() kernel.UUID { return c.actorID }

// ConfirmedAt returns the caller-supplied confirmation timestamp, or nil.
func (c *ConfirmAssignmentCommand) ConfirmedAt() *time.Time { return c.confirmedAt }

// Validate ensures the command was created through the constructor.
func (c *ConfirmAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmAssignmentCommandIsNotConstructed)
}
