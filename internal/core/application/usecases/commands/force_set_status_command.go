package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrForceSetStatusCommandIsNotConstructed = errors.New(
	"ForceSetStatusCommand must be created via ForceSetStatusCommand constructor",
)

// ForceSetStatusCommand is the administrative override: it places an
// assignment directly into the named status, skipping transition rules.
// Only the target vocabulary is still enforced: a work assignment cannot
// be forced into a quote status and vice versa.
type ForceSetStatusCommand struct {
	assignmentID kernel.UUID
	actorID      kernel.UUID
	targetKey    string

	guard guard.ConstructorGuard
}

// NewForceSetStatusCommand creates a force-set command. targetKey is a
// status catalog key, e.g. "wo_vendor_status.completed".
func NewForceSetStatusCommand(
	assignmentID, actorID kernel.UUID,
	targetKey string,
) (ForceSetStatusCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actorID.Validate()); err != nil {
		return ForceSetStatusCommand{}, err
	}
	if targetKey == "" {
		return ForceSetStatusCommand{}, errs.NewValueIsRequiredError("targetKey")
	}

	return ForceSetStatusCommand{
		assignmentID: assignmentID,
		actorID:      actorID,
		targetKey:    targetKey,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AssignmentID returns the assignment to override.
func (c *ForceSetStatusCommand) AssignmentID() kernel.UUID { return c.assignmentID }

// ActorID returns the acting user.
func (c *ForceSetStatusCommand) ActorID() kernel.UUID { return c.actorID }

// TargetKey returns the status catalog key of the target status.
func (c *ForceSetStatusCommand) TargetKey() string { return c.targetKey }

// Validate ensures the command was created through the constructor.
func (c *ForceSetStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceSetStatusCommandIsNotConstructed)
}
