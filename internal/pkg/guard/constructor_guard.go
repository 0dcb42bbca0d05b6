// Package guard provides a defensive construction pattern for value objects,
// commands, and entities. Embedding a ConstructorGuard lets a type detect
// whether it was created through its designated constructor or as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. The guard holds an internal flag that is only set
// when the object is created through the constructor; a zero-value struct
// fails validation.
//
// Example usage:
//
//	var ErrCommandNotConstructed = errors.New("command must be created via its constructor")
//
//	type IssueAssignmentCommand struct {
//	    assignmentID kernel.UUID
//	    guard        guard.ConstructorGuard
//	}
//
//	func NewIssueAssignmentCommand(id kernel.UUID) (IssueAssignmentCommand, error) {
//	    if err := id.Validate(); err != nil {
//	        return IssueAssignmentCommand{}, err
//	    }
//	    return IssueAssignmentCommand{assignmentID: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c *IssueAssignmentCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call this in the constructor of guarded objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
// Returns nil when constructed; otherwise returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
