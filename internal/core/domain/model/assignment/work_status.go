package assignment

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// WorkStatus is the lifecycle status vocabulary shared by Work and Recall
// assignments. It implements the per-assignment state machine:
//
//	Assigned ──> Issued ──> Confirmed ──> InProgress <──> InProgressAndHold
//	                              │             │                │
//	                              └─────────────┴────────────────┴──> Completed
//
// plus Canceled from any non-terminal status. The completion transition is
// additionally gated by the person kind, see Complete.
//
// Quote assignments use the disjoint QuoteStatus vocabulary; mixing the two
// is a modeling bug and is rejected at the Record boundary.
type WorkStatus int

const (
	// WorkUnknown represents an invalid or undefined status.
	WorkUnknown WorkStatus = iota

	// WorkAssigned is the initial status when a person is assigned.
	WorkAssigned

	// WorkIssued indicates the work order has been issued to the person.
	WorkIssued

	// WorkConfirmed indicates the assigned person confirmed the job.
	WorkConfirmed

	// WorkInProgress indicates the person is actively working.
	WorkInProgress

	// WorkInProgressAndHold indicates started work is paused.
	WorkInProgressAndHold

	// WorkCompleted is the terminal success status.
	WorkCompleted

	// WorkCanceled is the terminal cancellation status.
	WorkCanceled
)

func getWorkStatusStrings() map[WorkStatus]string {
	return map[WorkStatus]string{
		WorkUnknown:           "Unknown",
		WorkAssigned:          "Assigned",
		WorkIssued:            "Issued",
		WorkConfirmed:         "Confirmed",
		WorkInProgress:        "InProgress",
		WorkInProgressAndHold: "InProgressAndHold",
		WorkCompleted:         "Completed",
		WorkCanceled:          "Canceled",
	}
}

func getWorkStatusKeys() map[WorkStatus]string {
	//nolint:exhaustive // WorkUnknown has no catalog key
	return map[WorkStatus]string{
		WorkAssigned:          "wo_vendor_status.assigned",
		WorkIssued:            "wo_vendor_status.issued",
		WorkConfirmed:         "wo_vendor_status.confirmed",
		WorkInProgress:        "wo_vendor_status.in_progress",
		WorkInProgressAndHold: "wo_vendor_status.in_progress_and_hold",
		WorkCompleted:         "wo_vendor_status.completed",
		WorkCanceled:          "wo_vendor_status.canceled",
	}
}

// Validate checks if the WorkStatus value is valid.
func (s WorkStatus) Validate() error {
	if _, ok := getWorkStatusKeys()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("work status is invalid",
			fmt.Errorf("%d is not a valid work status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s WorkStatus) String() string {
	if str, ok := getWorkStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Key returns the stable catalog key of the status, or the empty string for
// invalid values.
func (s WorkStatus) Key() string {
	return getWorkStatusKeys()[s]
}

// WorkStatusFromKey resolves a stable catalog key to its WorkStatus value.
// Returns an UnknownStatusLabel transition error for keys outside the vocabulary.
func WorkStatusFromKey(key string) (WorkStatus, error) {
	for status, k := range getWorkStatusKeys() {
		if k == key {
			return status, nil
		}
	}
	return WorkUnknown, errs.NewUnknownStatusLabelError(key)
}

// IsTerminal reports whether the status allows no further normal transitions.
func (s WorkStatus) IsTerminal() bool {
	return s == WorkCompleted || s == WorkCanceled
}

// Issue transitions the status to Issued.
//
// Valid transitions:
//   - Assigned -> Issued
//
// Issuing an already issued assignment fails AlreadyInTargetState; any other
// source status fails InvalidTransition.
func (s WorkStatus) Issue(kind PersonKind) (WorkStatus, error) {
	if s == WorkIssued {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkIssued.String())
	}
	if s != WorkAssigned {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkIssued.String())
	}
	return WorkIssued, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Issued -> Confirmed
func (s WorkStatus) Confirm(kind PersonKind) (WorkStatus, error) {
	if s == WorkConfirmed {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkConfirmed.String())
	}
	if s != WorkIssued {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkConfirmed.String())
	}
	return WorkConfirmed, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Confirmed -> InProgress
//   - InProgressAndHold -> InProgress (resume)
func (s WorkStatus) Start(kind PersonKind) (WorkStatus, error) {
	if s == WorkInProgress {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkInProgress.String())
	}
	if s != WorkConfirmed && s != WorkInProgressAndHold {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkInProgress.String())
	}
	return WorkInProgress, nil
}

// Hold transitions the status to InProgressAndHold.
//
// Valid transitions:
//   - InProgress -> InProgressAndHold
func (s WorkStatus) Hold(kind PersonKind) (WorkStatus, error) {
	if s == WorkInProgressAndHold {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkInProgressAndHold.String())
	}
	if s != WorkInProgress {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkInProgressAndHold.String())
	}
	return WorkInProgressAndHold, nil
}

// completionSources lists the statuses each person kind may complete from.
// Technicians must traverse every intermediate step, suppliers may complete
// straight from Assigned, and vendors may skip Confirmed.
func completionSources(kind PersonKind) map[WorkStatus]struct{} {
	switch kind {
	case Technician:
		return map[WorkStatus]struct{}{
			WorkConfirmed:         {},
			WorkInProgress:        {},
			WorkInProgressAndHold: {},
		}
	case Supplier:
		return map[WorkStatus]struct{}{
			WorkAssigned:          {},
			WorkConfirmed:         {},
			WorkInProgress:        {},
			WorkInProgressAndHold: {},
		}
	case Vendor:
		return map[WorkStatus]struct{}{
			WorkIssued:            {},
			WorkConfirmed:         {},
			WorkInProgress:        {},
			WorkInProgressAndHold: {},
		}
	default:
		return nil
	}
}

// Complete transitions the status to Completed, gated by the person kind.
// Completing an already completed assignment fails AlreadyInTargetState;
// a disallowed source status fails InvalidTransition carrying the person
// kind, so callers can render a kind-specific message.
func (s WorkStatus) Complete(kind PersonKind) (WorkStatus, error) {
	if s == WorkCompleted {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkCompleted.String())
	}
	if _, ok := completionSources(kind)[s]; !ok {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkCompleted.String())
	}
	return WorkCompleted, nil
}

// Cancel transitions the status to Canceled.
// Allowed from any non-terminal status; canceling an already canceled
// assignment fails AlreadyInTargetState, and canceling a completed one
// fails InvalidTransition.
func (s WorkStatus) Cancel(kind PersonKind) (WorkStatus, error) {
	if s == WorkCanceled {
		return WorkUnknown, errs.NewAlreadyInTargetStateError(WorkCanceled.String())
	}
	if s == WorkCompleted {
		return WorkUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), WorkCanceled.String())
	}
	return WorkCanceled, nil
}
