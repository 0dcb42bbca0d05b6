package errs

import (
	"errors"
	"fmt"
)

// ErrTransition is the sentinel unwrapped by every TransitionError.
var ErrTransition = errors.New("status transition failed")

// TransitionKind classifies a TransitionError. There is exactly one error
// type for all lifecycle guard failures; callers switch on the kind rather
// than matching dozens of distinct error classes.
type TransitionKind int

const (
	// TransitionKindUnknown represents an unclassified transition failure.
	TransitionKindUnknown TransitionKind = iota

	// InvalidTransition indicates the target status is not reachable from
	// the current status for the assignment's person kind.
	InvalidTransition

	// AlreadyInTargetState indicates the assignment is already in the
	// requested status. No writes are performed.
	AlreadyInTargetState

	// PreconditionMissing indicates a required input (completion code,
	// completion date, work description) was absent. Which names it.
	PreconditionMissing

	// NotAuthorized indicates the acting user is not the assigned person.
	NotAuthorized

	// UnknownStatusLabel indicates the requested status label is not part
	// of the vocabulary for the assignment's job type.
	UnknownStatusLabel

	// LastAssignmentMissingCompletionDate indicates completion was refused
	// because it would complete the work order's last active assignment
	// while no actual completion date has been recorded.
	LastAssignmentMissingCompletionDate
)

// Precondition identifiers used with the PreconditionMissing kind.
const (
	PreconditionCompletionCode = "completion code"
	PreconditionCompletionDate = "completion date"
	PreconditionDescription    = "work description"
)

// TransitionError is the single tagged error raised by the assignment status
// machine and the workflow handlers. PersonKind and From carry the guard
// context so callers can render a precise, kind-specific message; Context
// holds any additional key/value detail.
type TransitionError struct {
	Kind       TransitionKind
	PersonKind string
	From       string
	Which      string
	Context    map[string]string
}

// NewInvalidTransitionError creates a TransitionError for a target status that
// is unreachable from the current status given the person kind.
func NewInvalidTransitionError(personKind, from, target string) *TransitionError {
	return &TransitionError{
		Kind:       InvalidTransition,
		PersonKind: personKind,
		From:       from,
		Context:    map[string]string{"target": target},
	}
}

// NewAlreadyInTargetStateError creates a TransitionError for a transition to
// the status the assignment is already in.
func NewAlreadyInTargetStateError(target string) *TransitionError {
	return &TransitionError{Kind: AlreadyInTargetState, From: target}
}

// NewPreconditionMissingError creates a TransitionError for a missing required
// input; which should be one of the Precondition* constants.
func NewPreconditionMissingError(which string) *TransitionError {
	return &TransitionError{Kind: PreconditionMissing, Which: which}
}

// NewNotAuthorizedError creates a TransitionError for an actor that is not the
// assigned person.
func NewNotAuthorizedError(actorID, assignedPersonID string) *TransitionError {
	return &TransitionError{
		Kind: NotAuthorized,
		Context: map[string]string{
			"actor":    actorID,
			"assigned": assignedPersonID,
		},
	}
}

// NewUnknownStatusLabelError creates a TransitionError for a label outside the
// job type's status vocabulary.
func NewUnknownStatusLabelError(label string) *TransitionError {
	return &TransitionError{
		Kind:    UnknownStatusLabel,
		Context: map[string]string{"label": label},
	}
}

// NewLastAssignmentMissingCompletionDateError creates a TransitionError for a
// completion refused because the parent work order lacks a completion date.
func NewLastAssignmentMissingCompletionDateError(workOrderID string) *TransitionError {
	return &TransitionError{
		Kind:    LastAssignmentMissingCompletionDate,
		Which:   PreconditionCompletionDate,
		Context: map[string]string{"workOrder": workOrderID},
	}
}

// Error formats a message per kind.
func (e *TransitionError) Error() string {
	switch e.Kind {
	case InvalidTransition:
		return fmt.Sprintf("%s: %s cannot move from %s to %s",
			ErrTransition, e.PersonKind, e.From, e.Context["target"])
	case AlreadyInTargetState:
		return fmt.Sprintf("%s: already in state %s", ErrTransition, e.From)
	case PreconditionMissing:
		return fmt.Sprintf("%s: %s is missing", ErrTransition, e.Which)
	case NotAuthorized:
		return fmt.Sprintf("%s: actor %s is not the assigned person %s",
			ErrTransition, e.Context["actor"], e.Context["assigned"])
	case UnknownStatusLabel:
		return fmt.Sprintf("%s: unknown status label %q", ErrTransition, e.Context["label"])
	case LastAssignmentMissingCompletionDate:
		return fmt.Sprintf("%s: work order %s has no completion date and this is its last active assignment",
			ErrTransition, e.Context["workOrder"])
	default:
		return ErrTransition.Error()
	}
}

// Unwrap returns the sentinel ErrTransition for errors.Is support.
func (e *TransitionError) Unwrap() error {
	return ErrTransition
}

// TransitionKindOf extracts the TransitionKind from err, returning
// TransitionKindUnknown and false when err is not a TransitionError.
func TransitionKindOf(err error) (TransitionKind, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return TransitionKindUnknown, false
}
