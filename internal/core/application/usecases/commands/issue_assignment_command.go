package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrIssueAssignmentCommandIsNotConstructed = errors.New(
	"IssueAssignmentCommand must be created via NewIssueAssignmentCommand constructor",
)

// IssueAssignmentCommand moves an assignment from Assigned to Issued
// (RfqAssigned to RfqIssued for quotes).
type IssueAssignmentCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueAssignmentCommand creates a command to issue an assignment.
func NewIssueAssignmentCommand(assignmentID, actorID kernel.UUID) (IssueAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return IssueAssignmentCommand{}, err
	}

	return IssueAssignmentCommand{
		assignmentID: assignmentID,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to issue.
func (c *IssueAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *IssueAssignmentCommand) ActorID() kernel.UUID { return c.actorID }

// Validate ensures the command was created through the constructor.
func (c *IssueAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrIssueAssignmentCommandIsNotConstructed)
}
