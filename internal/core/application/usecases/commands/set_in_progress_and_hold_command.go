package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrSetInProgressAndHoldCommandIsNotConstructed = errors.New(
	"SetInProgressAndHoldCommand must be created via NewSetInProgressAndHoldCommand constructor",
)

// SetInProgressAndHoldCommand pauses a work assignment that is InProgress.
type SetInProgressAndHoldCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetInProgressAndHoldCommand creates a command to pause an assignment.
func NewSetInProgressAndHoldCommand(assignmentID, actorID kernel.UUID) (SetInProgressAndHoldCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return SetInProgressAndHoldCommand{}, err
	}

	return SetInProgressAndHoldCommand{
		assignmentID: assignmentID,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to pause.
func (c *SetInProgressAndHoldCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *SetInProgressAndHoldCommand) ActorID() kernel.UUID { return c.actorID }

// Validate ensures the command was created through the constructor.
func (c *SetInProgressAndHoldCommand) Validate() error {
	return c.guard.Validate(ErrSetInProgressAndHoldCommandIsNotConstructed)
}
