package workorder

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

var (
	// ErrWorkOrderIsNotConstructed is returned when a WorkOrder instance was not
	// created through NewWorkOrder or RestoreWorkOrder.
	ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

	// ErrWorkOrderIsCanceled is returned when a status write is attempted on a
	// canceled work order. Canceled is terminal and freezes the aggregate.
	ErrWorkOrderIsCanceled = errors.New("work order is canceled and its status is frozen")

	// ErrCompletionDateAlreadySet is returned when stamping an actual completion
	// date that has already been recorded.
	ErrCompletionDateAlreadySet = errors.New("actual completion date is already set")
)

// WorkOrder is the parent aggregate of the dual-level status engine. It owns
// the work-order-level aggregate status, which is derived from the statuses of
// its non-canceled assignments by the status aggregator.
//
// WorkOrder follows these invariants:
//   - The aggregate status is only written through ApplyStatus (aggregator
//     output) or Cancel (terminal override)
//   - Once Canceled, the status never changes again
//   - The actual completion date is stamped at most once
//   - Can only be created through NewWorkOrder or RestoreWorkOrder
type WorkOrder struct {
	id kernel.UUID

	// status is the aggregate status derived from assignment statuses
	status Status

	// invoiceStatus is the billing-side status key, owned by external
	// billing workflows and carried through unchanged
	invoiceStatus string

	// actualCompletionDate is recorded by an operator or auto-stamped
	// when the Completed rollup rule fires
	actualCompletionDate *time.Time

	// pickupReference marks work orders whose goods are picked up rather
	// than serviced on site; drives the no-active-assignment fallback
	pickupReference *string

	// requiresCompletionCode mirrors the customer configuration gate on
	// assignment completion
	requiresCompletionCode bool

	isConstructed bool
}

// NewWorkOrder creates a new WorkOrder in Created status.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//
// Returns the created work order, or a validation error if the id is invalid.
func NewWorkOrder(id kernel.UUID) (*WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &WorkOrder{
		id:            id,
		status:        Created,
		isConstructed: true,
	}, nil
}

// RestoreWorkOrder reconstructs a WorkOrder from persistence.
// The status must be a valid member of the aggregate vocabulary.
func RestoreWorkOrder(
	id kernel.UUID,
	status Status,
	invoiceStatus string,
	actualCompletionDate *time.Time,
	pickupReference *string,
	requiresCompletionCode bool,
) (*WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &WorkOrder{
		id:                     id,
		status:                 status,
		invoiceStatus:          invoiceStatus,
		actualCompletionDate:   actualCompletionDate,
		pickupReference:        pickupReference,
		requiresCompletionCode: requiresCompletionCode,
		isConstructed:          true,
	}, nil
}

// Validate ensures the WorkOrder was properly constructed.
func (w *WorkOrder) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two work orders by their unique identifiers.
func (w *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the work order's unique identifier.
func (w *WorkOrder) ID() kernel.UUID {
	return w.id
}

// Status returns the current aggregate status.
func (w *WorkOrder) Status() Status {
	return w.status
}

// InvoiceStatus returns the billing-side status key.
func (w *WorkOrder) InvoiceStatus() string {
	return w.invoiceStatus
}

// ActualCompletionDate returns the recorded completion date, or nil.
func (w *WorkOrder) ActualCompletionDate() *time.Time {
	return w.actualCompletionDate
}

// PickupReference returns the pickup reference, or nil.
func (w *WorkOrder) PickupReference() *string {
	return w.pickupReference
}

// RequiresCompletionCode reports whether the customer configuration requires
// a completion code on assignment completion.
func (w *WorkOrder) RequiresCompletionCode() bool {
	return w.requiresCompletionCode
}

// IsCanceled reports whether the work order is in the terminal Canceled status.
func (w *WorkOrder) IsCanceled() bool {
	return w.status == Canceled
}

// ApplyStatus writes an aggregator-computed status onto the work order.
// Rejects writes on a canceled work order, which is terminal.
func (w *WorkOrder) ApplyStatus(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if w.status == Canceled {
		return ErrWorkOrderIsCanceled
	}

	w.status = target
	return nil
}

// Cancel applies the terminal override. Canceling an already canceled work
// order fails with AlreadyInTargetState.
func (w *WorkOrder) Cancel() error {
	if w.status == Canceled {
		return errs.NewAlreadyInTargetStateError(Canceled.String())
	}

	w.status = Canceled
	return nil
}

// StampActualCompletionDate records the actual completion date once.
// A second stamp fails with ErrCompletionDateAlreadySet.
func (w *WorkOrder) StampActualCompletionDate(at time.Time) error {
	if w.actualCompletionDate != nil {
		return ErrCompletionDateAlreadySet
	}

	w.actualCompletionDate = &at
	return nil
}

// SetPickupReference records the pickup reference for the work order.
func (w *WorkOrder) SetPickupReference(reference string) {
	w.pickupReference = &reference
}

// Snapshot captures the externally observable work-order fields at a point
// in time. Used to build the changed-fields diff reported to callers.
type Snapshot struct {
	Status               Status
	InvoiceStatus        string
	ActualCompletionDate *time.Time
}

// TakeSnapshot captures the current observable state of the work order.
func (w *WorkOrder) TakeSnapshot() Snapshot {
	return Snapshot{
		Status:               w.status,
		InvoiceStatus:        w.invoiceStatus,
		ActualCompletionDate: w.actualCompletionDate,
	}
}

// FieldChange describes one changed work-order field as an old/new pair.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// Diff compares a prior snapshot against the current state and returns the
// list of changed fields. An empty slice means nothing observable changed.
func (w *WorkOrder) Diff(before Snapshot) []FieldChange {
	changes := make([]FieldChange, 0, 2)

	if before.Status != w.status {
		changes = append(changes, FieldChange{
			Field: "status",
			Old:   before.Status.Key(),
			New:   w.status.Key(),
		})
	}
	if before.InvoiceStatus != w.invoiceStatus {
		changes = append(changes, FieldChange{
			Field: "invoice_status",
			Old:   before.InvoiceStatus,
			New:   w.invoiceStatus,
		})
	}
	if !equalTimes(before.ActualCompletionDate, w.actualCompletionDate) {
		changes = append(changes, FieldChange{
			Field: "actual_completion_date",
			Old:   formatTime(before.ActualCompletionDate),
			New:   formatTime(w.actualCompletionDate),
		})
	}

	return changes
}

func equalTimes(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
