package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrBulkCompleteCommandIsNotConstructed = errors.New(
	"BulkCompleteCommand must be created via NewBulkCompleteCommand constructor",
)

// BulkCompleteCommand completes a batch of assignments in one transaction.
// The batch is all-or-nothing: the first failing item aborts the whole
// operation and no item's transition survives.
type BulkCompleteCommand struct {
	assignmentIDs  []kernel.UUID
	actorID        kernel.UUID
	completionCode string
	origin         Origin

	// completedAt overrides the completion timestamp; nil means now
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewBulkCompleteCommand creates a command to complete several assignments
// atomically. The batch must be non-empty.
func NewBulkCompleteCommand(
	assignmentIDs []kernel.UUID,
	actorID kernel.UUID,
	completionCode string,
	origin Origin,
	completedAt *time.Time,
) (BulkCompleteCommand, error) {
	if len(assignmentIDs) == 0 {
		return BulkCompleteCommand{}, errs.NewValueIsRequiredError("assignmentIDs")
	}

	join := actorID.Validate()
	for _, id := range assignmentIDs {
		join = errors.Join(join, id.Validate())
	}
	if join != nil {
		return BulkCompleteCommand{}, join
	}

	ids := make([]kernel.UUID, len(assignmentIDs))
	copy(ids, assignmentIDs)

	return BulkCompleteCommand{
		assignmentIDs:  ids,
		actorID:        actorID,
		completionCode: completionCode,
		origin:         origin,
		completedAt:    completedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// AssignmentIDs returns the assignments to complete, in request order.
func (c *BulkCompleteCommand) AssignmentIDs() []kernel.UUID { return c.assignmentIDs }

// ActorID returns the acting user.
func (c *BulkCompleteCommand) ActorID() kernel.UUID { return c.actorID }

// CompletionCode returns the supplied completion code, possibly empty. It
// applies to every item in the batch.
func (c *BulkCompleteCommand) CompletionCode() string { return c.completionCode }

// Origin returns the request channel.
func (c *BulkCompleteCommand) Origin() Origin { return c.origin }

// CompletedAt returns the caller-supplied completion timestamp, or nil.
func (c *BulkCompleteCommand) CompletedAt() *time.Time { return c.completedAt }

// Validate ensures the command was created through the constructor.
func (c *BulkCompleteCommand) Validate() error {
	return c.guard.Validate(ErrBulkCompleteCommandIsNotConstructed)
}
