package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrSetInProgressCommandIsNotConstructed = errors.New(
	"SetInProgressCommand must be created via NewSetInProgressCommand constructor",
)

// SetInProgressCommand moves a work assignment to InProgress, either from
// Confirmed (start) or from InProgressAndHold (resume).
type SetInProgressCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetInProgressCommand creates a command to start or resume an assignment.
func NewSetInProgressCommand(assignmentID, actorID kernel.UUID) (SetInProgressCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return SetInProgressCommand{}, err
	}

	return SetInProgressCommand{
		assignmentID: assignmentID,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to start.
func (c *SetInProgressCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *SetInProgressCommand) ActorID() kernel.UUID { return c.actorID }

// Validate ensures the command was created through the constructor.
func (c *SetInProgressCommand) Validate() error {
	return c.guard.Validate(ErrSetInProgressCommandIsNotConstructed)
}
