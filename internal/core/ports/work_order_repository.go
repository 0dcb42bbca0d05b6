package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work order aggregates.
type WorkOrderRepository interface {
	// Add persists a new work order aggregate to storage.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists changes to an existing work order aggregate.
	Update(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Get retrieves a work order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetForUpdate retrieves a work order and takes a row-level lock on it
	// for the remainder of the enclosing transaction.
	//
	// Concurrent transitions on different assignments of the same work
	// order race on the aggregate recompute; callers MUST take this lock
	// before the aggregator's read-modify-write or a lost update on the
	// aggregate status is possible. No other serialization mechanism is
	// assumed.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)
}
