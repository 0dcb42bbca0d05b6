package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrCompleteAssignmentCommandIsNotConstructed = errors.New(
	"CompleteAssignmentCommand must be created via NewCompleteAssignmentCommand constructor",
)

// Origin identifies the channel a completion request arrived through. The
// last-assignment completion-date guard applies only to operator-origin
// requests; mobile completions bypass it by design.
type Origin int

const (
	// OriginOperator is a back-office request.
	OriginOperator Origin = iota

	// OriginMobile is a request from the technician's mobile client.
	OriginMobile
)

// CompleteAssignmentCommand moves an assignment to Completed (RfqReceived
// for quotes), gated by the person kind of the assignee.
type CompleteAssignmentCommand struct {
	assignmentID   kernel.UUID
	actorID        kernel.UUID
	completionCode string
	origin         Origin

	// completedAt overrides the completion timestamp; nil means now
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewCompleteAssignmentCommand creates a command to complete an assignment.
// completedAt may be nil to stamp the current time.
func NewCompleteAssignmentCommand(
	assignmentID, actorID kernel.UUID,
	completionCode string,
	origin Origin,
	completedAt *time.Time,
) (CompleteAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return CompleteAssignmentCommand{}, err
	}

	return CompleteAssignmentCommand{
		assignmentID:   assignmentID,
		actorID:        actorID,
		completionCode: completionCode,
		origin:         origin,
		completedAt:    completedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to complete.
func (c *CompleteAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *CompleteAssignmentCommand) ActorID() kernel.UUID { return c.actorID }

// CompletionCode returns the supplied completion code, possibly empty.
func (c *CompleteAssignmentCommand) CompletionCode() string { return c.completionCode }

// Origin returns the request channel.
func (c *CompleteAssignmentCommand) Origin() Origin { return c.origin }

// CompletedAt returns the caller-supplied completion timestamp, or nil.
func (c *CompleteAssignmentCommand) CompletedAt() *time.Time { return c.completedAt }

// Validate ensures the command was created through the constructor.
func (c *CompleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAssignmentCommandIsNotConstructed)
}
