package assignment

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrVocabularyMismatch is returned when a status from the wrong
	// vocabulary is paired with a job type. This is a modeling bug, not a
	// valid state, and is rejected at the boundary.
	ErrVocabularyMismatch = errors.New("status vocabulary does not match job type")
)

// Record links one person to one work order and carries the assignment-level
// lifecycle status. It is the aggregate root of the assignment status
// machine: every status write goes through one of its transition methods
// (guarded) or through ForceSet (guard-free administrative path).
//
// The status field is a tagged union keyed by the job type: Work and Recall
// records hold a WorkStatus, Quote records hold a QuoteStatus. The
// constructors and RestoreRecord reject mixed pairings.
//
// Record follows these invariants:
//   - Exactly one of the two status vocabularies is populated
//   - confirmedAt/completedAt are stamped only by the Confirmed/Completed
//     transitions (or a force write to those statuses)
//   - A canceled record is soft-disabled, never deleted
type Record struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	personID    kernel.UUID
	personKind  PersonKind
	jobType     JobType

	workStatus  WorkStatus
	quoteStatus QuoteStatus

	// priority orders a person's assignments; 0 means unset and is
	// replaced with the next per-person value at first transition
	priority int

	workDescription string
	completionCode  string
	cancelReason    string

	confirmedAt *time.Time
	completedAt *time.Time

	disabled   bool
	disabledAt *time.Time

	isConstructed bool
}

// NewRecord creates a new assignment record in the initial status of its job
// type's vocabulary (Assigned for Work/Recall, RfqAssigned for Quote).
func NewRecord(
	id kernel.UUID,
	workOrderID kernel.UUID,
	personID kernel.UUID,
	personKind PersonKind,
	jobType JobType,
	workDescription string,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
		personID.Validate(),
		personKind.Validate(),
		jobType.Validate(),
	); err != nil {
		return nil, err
	}

	record := &Record{
		id:              id,
		workOrderID:     workOrderID,
		personID:        personID,
		personKind:      personKind,
		jobType:         jobType,
		workDescription: workDescription,
		isConstructed:   true,
	}

	if jobType.IsQuote() {
		record.quoteStatus = RfqAssigned
	} else {
		record.workStatus = WorkAssigned
	}

	return record, nil
}

// RestoreRecord reconstructs a Record from persistence. Exactly one of
// workStatus/quoteStatus must be valid, matching the job type; a mismatch
// fails ErrVocabularyMismatch.
func RestoreRecord(
	id kernel.UUID,
	workOrderID kernel.UUID,
	personID kernel.UUID,
	personKind PersonKind,
	jobType JobType,
	workStatus WorkStatus,
	quoteStatus QuoteStatus,
	priority int,
	workDescription string,
	completionCode string,
	cancelReason string,
	confirmedAt *time.Time,
	completedAt *time.Time,
	disabled bool,
	disabledAt *time.Time,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
		personID.Validate(),
		personKind.Validate(),
		jobType.Validate(),
	); err != nil {
		return nil, err
	}

	if jobType.IsQuote() {
		if workStatus != WorkUnknown {
			return nil, fmt.Errorf("%w: quote assignment carries work status %s",
				ErrVocabularyMismatch, workStatus)
		}
		if err := quoteStatus.Validate(); err != nil {
			return nil, err
		}
	} else {
		if quoteStatus != QuoteUnknown {
			return nil, fmt.Errorf("%w: work assignment carries quote status %s",
				ErrVocabularyMismatch, quoteStatus)
		}
		if err := workStatus.Validate(); err != nil {
			return nil, err
		}
	}

	return &Record{
		id:              id,
		workOrderID:     workOrderID,
		personID:        personID,
		personKind:      personKind,
		jobType:         jobType,
		workStatus:      workStatus,
		quoteStatus:     quoteStatus,
		priority:        priority,
		workDescription: workDescription,
		completionCode:  completionCode,
		cancelReason:    cancelReason,
		confirmedAt:     confirmedAt,
		completedAt:     completedAt,
		disabled:        disabled,
		disabledAt:      disabledAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Record was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// IsEqual compares two records by their unique identifiers.
func (r *Record) IsEqual(other *Record) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// WorkOrderID returns the parent work order's identifier.
func (r *Record) WorkOrderID() kernel.UUID { return r.workOrderID }

// PersonID returns the assigned person's identifier.
func (r *Record) PersonID() kernel.UUID { return r.personID }

// PersonKind returns the assigned person's classification.
func (r *Record) PersonKind() PersonKind { return r.personKind }

// JobType returns the record's job type.
func (r *Record) JobType() JobType { return r.jobType }

// WorkStatus returns the work-vocabulary status. Only meaningful for
// Work/Recall records; WorkUnknown for Quote records.
func (r *Record) WorkStatus() WorkStatus { return r.workStatus }

// QuoteStatus returns the RFQ-vocabulary status. Only meaningful for Quote
// records; QuoteUnknown otherwise.
func (r *Record) QuoteStatus() QuoteStatus { return r.quoteStatus }

// StatusKey returns the stable catalog key of the current status, whichever
// vocabulary applies.
func (r *Record) StatusKey() string {
	if r.jobType.IsQuote() {
		return r.quoteStatus.Key()
	}
	return r.workStatus.Key()
}

// StatusString returns the human-readable current status name.
func (r *Record) StatusString() string {
	if r.jobType.IsQuote() {
		return r.quoteStatus.String()
	}
	return r.workStatus.String()
}

// Priority returns the per-person work ordering priority; 0 means unset.
func (r *Record) Priority() int { return r.priority }

// WorkDescription returns the work description shown to the person.
func (r *Record) WorkDescription() string { return r.workDescription }

// CompletionCode returns the completion code recorded at completion.
func (r *Record) CompletionCode() string { return r.completionCode }

// CancelReason returns the reason code recorded at cancellation.
func (r *Record) CancelReason() string { return r.cancelReason }

// ConfirmedAt returns the confirmation timestamp, or nil.
func (r *Record) ConfirmedAt() *time.Time { return r.confirmedAt }

// CompletedAt returns the completion timestamp, or nil.
func (r *Record) CompletedAt() *time.Time { return r.completedAt }

// Disabled reports whether the record has been soft-disabled.
func (r *Record) Disabled() bool { return r.disabled }

// DisabledAt returns the soft-disable timestamp, or nil.
func (r *Record) DisabledAt() *time.Time { return r.disabledAt }

// IsActive reports whether the record counts as active: not disabled and not
// canceled. Only active Work/Recall records enter the aggregation vector.
func (r *Record) IsActive() bool {
	if r.disabled {
		return false
	}
	if r.jobType.IsQuote() {
		return r.quoteStatus != QuoteCanceled
	}
	return r.workStatus != WorkCanceled
}

// IsCompleted reports whether the record reached its vocabulary's terminal
// success status.
func (r *Record) IsCompleted() bool {
	if r.jobType.IsQuote() {
		return r.quoteStatus == RfqReceived
	}
	return r.workStatus == WorkCompleted
}

// SetPriorityIfUnset assigns the next per-person priority when none has been
// set yet. Transition methods do not touch an already assigned priority.
func (r *Record) SetPriorityIfUnset(next int) {
	if r.priority == 0 {
		r.priority = next
	}
}

// Issue moves the assignment to Issued (RfqIssued for quotes).
//
// A work assignment requires a non-empty work description; when it is empty
// and autoFillDescription is non-empty, the description is filled in, else
// the transition fails PreconditionMissing.
func (r *Record) Issue(autoFillDescription string) error {
	if r.jobType.IsQuote() {
		next, err := r.quoteStatus.Issue(r.personKind)
		if err != nil {
			return err
		}
		r.quoteStatus = next
		return nil
	}

	if r.workDescription == "" {
		if autoFillDescription == "" {
			return errs.NewPreconditionMissingError(errs.PreconditionDescription)
		}
		r.workDescription = autoFillDescription
	}

	next, err := r.workStatus.Issue(r.personKind)
	if err != nil {
		return err
	}
	r.workStatus = next
	return nil
}

// Confirm moves the assignment to Confirmed (RfqConfirmed for quotes) and
// stamps confirmedAt. For work assignments the actor must be the assigned
// person; anyone may confirm a quote on the person's behalf.
func (r *Record) Confirm(actorID kernel.UUID, at time.Time) error {
	if r.jobType.IsQuote() {
		next, err := r.quoteStatus.Confirm(r.personKind)
		if err != nil {
			return err
		}
		r.quoteStatus = next
		r.confirmedAt = &at
		return nil
	}

	if !actorID.IsEqual(r.personID) {
		return errs.NewNotAuthorizedError(actorID.String(), r.personID.String())
	}

	next, err := r.workStatus.Confirm(r.personKind)
	if err != nil {
		return err
	}
	r.workStatus = next
	r.confirmedAt = &at
	return nil
}

// Start moves a work assignment to InProgress. Quote assignments have no
// in-progress status; the label is outside their vocabulary.
func (r *Record) Start() error {
	if r.jobType.IsQuote() {
		return errs.NewUnknownStatusLabelError(WorkInProgress.Key())
	}

	next, err := r.workStatus.Start(r.personKind)
	if err != nil {
		return err
	}
	r.workStatus = next
	return nil
}

// Hold moves a work assignment to InProgressAndHold. Quote assignments have
// no hold status; the label is outside their vocabulary.
func (r *Record) Hold() error {
	if r.jobType.IsQuote() {
		return errs.NewUnknownStatusLabelError(WorkInProgressAndHold.Key())
	}

	next, err := r.workStatus.Hold(r.personKind)
	if err != nil {
		return err
	}
	r.workStatus = next
	return nil
}

// Complete moves the assignment to Completed (RfqReceived for quotes),
// gated by person kind for work assignments, and stamps completedAt and the
// completion code. Whether a completion code is required at all is the
// caller's check against the customer policy; the record stores whatever
// was supplied.
func (r *Record) Complete(at time.Time, completionCode string) error {
	if r.jobType.IsQuote() {
		next, err := r.quoteStatus.Receive(r.personKind)
		if err != nil {
			return err
		}
		r.quoteStatus = next
		r.completedAt = &at
		return nil
	}

	next, err := r.workStatus.Complete(r.personKind)
	if err != nil {
		return err
	}
	r.workStatus = next
	r.completedAt = &at
	r.completionCode = completionCode
	return nil
}

// Cancel moves the assignment to Canceled and soft-disables the record.
// A reason code is required.
func (r *Record) Cancel(reason string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	if r.jobType.IsQuote() {
		next, err := r.quoteStatus.Cancel(r.personKind)
		if err != nil {
			return err
		}
		r.quoteStatus = next
	} else {
		next, err := r.workStatus.Cancel(r.personKind)
		if err != nil {
			return err
		}
		r.workStatus = next
	}

	r.cancelReason = reason
	r.disabled = true
	r.disabledAt = &at
	return nil
}

// ForceSetWork writes a work-vocabulary status unconditionally, bypassing
// every guard. The target is still validated against the vocabulary and the
// job type; confirmedAt/completedAt are stamped when the target is
// Confirmed/Completed and no timestamp exists yet.
//
// Force writes exist for administrative correction and system-driven updates
// where guard checks would incorrectly block a known-valid state. They run
// inside the same transaction and carry the same audit and aggregation side
// effects as normal transitions.
func (r *Record) ForceSetWork(target WorkStatus, at time.Time) error {
	if r.jobType.IsQuote() {
		return errs.NewUnknownStatusLabelError(target.Key())
	}
	if err := target.Validate(); err != nil {
		return err
	}

	r.workStatus = target
	switch target {
	case WorkConfirmed:
		if r.confirmedAt == nil {
			r.confirmedAt = &at
		}
	case WorkCompleted:
		if r.completedAt == nil {
			r.completedAt = &at
		}
	case WorkCanceled:
		r.disabled = true
		if r.disabledAt == nil {
			r.disabledAt = &at
		}
	}
	return nil
}

// ForceSetQuote writes an RFQ-vocabulary status unconditionally, bypassing
// every guard. See ForceSetWork for force-write semantics.
func (r *Record) ForceSetQuote(target QuoteStatus, at time.Time) error {
	if !r.jobType.IsQuote() {
		return errs.NewUnknownStatusLabelError(target.Key())
	}
	if err := target.Validate(); err != nil {
		return err
	}

	r.quoteStatus = target
	switch target {
	case RfqConfirmed:
		if r.confirmedAt == nil {
			r.confirmedAt = &at
		}
	case RfqReceived:
		if r.completedAt == nil {
			r.completedAt = &at
		}
	case QuoteCanceled:
		r.disabled = true
		if r.disabledAt == nil {
			r.disabledAt = &at
		}
	}
	return nil
}

// Disable soft-disables the record without a status transition. Used when an
// assignment is replaced rather than canceled.
func (r *Record) Disable(at time.Time) {
	r.disabled = true
	r.disabledAt = &at
}
