package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
)

// Audit entity type identifiers used with ActivityLog.Append.
const (
	EntityTypeWorkOrder  = "work_order"
	EntityTypeAssignment = "assignment"
)

// ActivityLog is the audit sink. Append fires inside the same transaction as
// the status transition it describes: a rolled-back transition leaves no
// audit entry behind.
type ActivityLog interface {
	Append(ctx context.Context, entityType string, entityID kernel.UUID, message string, actorID kernel.UUID) error
}

// PersonDirectory classifies persons. The completion guards of the
// assignment status machine depend on the kind of the assigned person.
type PersonDirectory interface {
	KindOf(ctx context.Context, personID kernel.UUID) (assignment.PersonKind, error)
}

// TypeCatalog maps stable status keys (e.g. "wo_vendor_status.completed") to
// storage-level numeric ids and back. The core always operates on keys and
// never hardcodes ids.
type TypeCatalog interface {
	IDOf(ctx context.Context, key string) (int, error)
	KeyOf(ctx context.Context, id int) (string, error)
}

// CustomerPolicy exposes per-customer configuration consulted by the
// workflow handlers.
type CustomerPolicy interface {
	// RequiresCompletionCode reports whether the work order's customer
	// configuration requires a completion code on assignment completion.
	RequiresCompletionCode(ctx context.Context, workOrderID kernel.UUID) (bool, error)

	// AutoFillWorkDescription returns the description to fill in when an
	// assignment is issued without one. An empty string means auto-fill
	// is not allowed and issuing fails instead.
	AutoFillWorkDescription(ctx context.Context, workOrderID kernel.UUID) (string, error)
}

// NotificationDispatcher hands off best-effort notification events. Called
// only after the core's transaction has committed; delivery mechanics are
// out of scope.
type NotificationDispatcher interface {
	OnCompleted(actorID kernel.UUID, workOrderID kernel.UUID)
}
