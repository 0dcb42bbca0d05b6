package services

import (
	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/workorder"
)

// Resolution is the outcome of one aggregate-status recomputation.
type Resolution struct {
	// Target is the status the work order should carry. When Changed is
	// false it equals the work order's current status.
	Target workorder.Status

	// Changed reports whether the target differs from the current status.
	Changed bool

	// StampCompletionDate reports that the Completed rule fired while the
	// work order has no actual completion date and auto-stamping is
	// enabled. The caller persists the stamp alongside the status change;
	// a failed stamp is logged, not fatal.
	StampCompletionDate bool
}

// StatusAggregator derives the single work-order-level status from the
// multiset of its active assignment statuses. It is the one authoritative
// rollup implementation: every call site recomputes through this service.
//
// Recompute is pure: it depends only on the work order's current status and
// the count vector, performs no I/O, and calling it twice with the same
// inputs yields the same resolution with Changed=false on the second call
// (once the first resolution has been applied).
//
// Rollup priority, first matching rule wins:
//
//	Completed > InProgressAndHold > InProgress > Confirmed > Issued > Assigned
//
// Each bucket matches when it is populated and either covers every active
// assignment or no assignment exists in any lower-priority bucket.
type StatusAggregator struct {
	// autoStampCompletionDate enables stamping the work order's actual
	// completion date when the Completed rule fires and none is recorded
	autoStampCompletionDate bool
}

// NewStatusAggregator creates a StatusAggregator.
// autoStampCompletionDate mirrors the policy of stamping the actual
// completion date as part of a Completed rollup.
func NewStatusAggregator(autoStampCompletionDate bool) StatusAggregator {
	return StatusAggregator{autoStampCompletionDate: autoStampCompletionDate}
}

// Recompute resolves the target aggregate status for a work order given its
// current count vector.
//
// The branches, evaluated strictly in order:
//  1. A canceled work order is frozen: no-op.
//  2. No assignments, or none active: fall back to Quote (pickup reference
//     present and an active quote exists) or PickedUp (pickup reference
//     present, not already picked up); otherwise no-op.
//  3. The priority rollup over the active status buckets.
//  4. No applicable rule is explicitly "no status change needed": a no-op
//     outcome, not an error.
func (a StatusAggregator) Recompute(wo *workorder.WorkOrder, vector CountVector) Resolution {
	current := wo.Status()
	unchanged := Resolution{Target: current}

	if current == workorder.Canceled {
		return unchanged
	}

	if vector.Total == 0 || vector.Active == 0 {
		if wo.PickupReference() == nil {
			return unchanged
		}
		if vector.HasActiveQuote {
			return a.resolve(wo, workorder.Quote)
		}
		if current != workorder.PickedUp {
			return a.resolve(wo, workorder.PickedUp)
		}
		return unchanged
	}

	if target, ok := a.rollup(vector); ok {
		return a.resolve(wo, target)
	}

	return unchanged
}

// rollup evaluates the priority-ordered bucket rules against the vector.
// Returns false when no rule matches, which the caller treats as a no-op.
func (a StatusAggregator) rollup(v CountVector) (workorder.Status, bool) {
	completed := v.Count(assignment.WorkCompleted)
	hold := v.Count(assignment.WorkInProgressAndHold)
	inProgress := v.Count(assignment.WorkInProgress)
	confirmed := v.Count(assignment.WorkConfirmed)
	issued := v.Count(assignment.WorkIssued)
	assigned := v.Count(assignment.WorkAssigned)

	switch {
	case completed > 0 && completed >= v.Active:
		return workorder.Completed, true
	case hold > 0 && (hold == v.Active ||
		(inProgress == 0 && confirmed == 0 && assigned == 0 && issued == 0)):
		return workorder.InProgressAndHold, true
	case inProgress > 0 && (inProgress == v.Active ||
		(confirmed == 0 && assigned == 0 && issued == 0)):
		return workorder.InProgress, true
	case confirmed > 0 && (confirmed == v.Active ||
		(assigned == 0 && issued == 0)):
		return workorder.Confirmed, true
	case issued > 0 && assigned == 0:
		return workorder.Issued, true
	case assigned > 0:
		return workorder.Assigned, true
	default:
		return workorder.Unknown, false
	}
}

// resolve builds the resolution for a computed target, including the
// completion-date side effect flag.
func (a StatusAggregator) resolve(wo *workorder.WorkOrder, target workorder.Status) Resolution {
	return Resolution{
		Target:  target,
		Changed: target != wo.Status(),
		StampCompletionDate: target == workorder.Completed &&
			a.autoStampCompletionDate &&
			wo.ActualCompletionDate() == nil,
	}
}
