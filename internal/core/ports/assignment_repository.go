package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment records.
type AssignmentRepository interface {
	// Add persists a new assignment record to storage.
	Add(ctx context.Context, aggregate *assignment.Record) error

	// Update persists changes to an existing assignment record.
	Update(ctx context.Context, aggregate *assignment.Record) error

	// Get retrieves an assignment record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Record, error)

	// GetByWorkOrder retrieves every assignment record of a work order,
	// including disabled ones. The count vector filters for itself.
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*assignment.Record, error)

	// GetActiveByPerson retrieves a person's active assignment records
	// ordered by priority.
	GetActiveByPerson(ctx context.Context, personID kernel.UUID) ([]*assignment.Record, error)

	// NextPriority returns the next monotonically increasing priority
	// value scoped to the person. Evaluated inside the enclosing
	// transaction.
	NextPriority(ctx context.Context, personID kernel.UUID) (int, error)
}
