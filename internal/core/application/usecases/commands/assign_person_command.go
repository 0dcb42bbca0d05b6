package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrAssignPersonCommandIsNotConstructed = errors.New(
	"AssignPersonCommand must be created via NewAssignPersonCommand constructor",
)

// AssignPersonCommand links a person to a work order with a new assignment
// record in the initial status of the job type's vocabulary.
type AssignPersonCommand struct {
	workOrderID     kernel.UUID
	personID        kernel.UUID
	actorID         kernel.UUID
	jobType         assignment.JobType
	workDescription string

	guard guard.ConstructorGuard
}

// NewAssignPersonCommand creates a command to assign a person to a work order.
// The work description may be empty; issuing later fills it from policy or fails.
func NewAssignPersonCommand(
	workOrderID, personID, actorID kernel.UUID,
	jobType assignment.JobType,
	workDescription string,
) (AssignPersonCommand, error) {
	if err := errors.Join(
		workOrderID.Validate(),
		personID.Validate(),
		actorID.Validate(),
		jobType.Validate(),
	); err != nil {
		return AssignPersonCommand{}, err
	}

	return AssignPersonCommand{
		workOrderID:     workOrderID,
		personID:        personID,
		actorID:         actorID,
		jobType:         jobType,
		workDescription: workDescription,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// WorkOrderID returns the target work order's identifier.
func (c *AssignPersonCommand) WorkOrderID() kernel.UUID { return c.workOrderID }

// PersonID returns the person to assign.
func (c *AssignPersonCommand) PersonID() kernel.UUID { return c.personID }

// ActorID returns the acting user.
func (c *AssignPersonCommand) ActorID() kernel.UUID { return c.actorID }

// JobType returns the job type of the new assignment.
func (c *AssignPersonCommand) JobType() assignment.JobType { return c.jobType }

// WorkDescription returns the initial work description.
func (c *AssignPersonCommand) WorkDescription() string { return c.workDescription }

// Validate ensures the command was created through the constructor.
func (c *AssignPersonCommand) Validate() error {
	return c.guard.Validate(ErrAssignPersonCommandIsNotConstructed)
}
