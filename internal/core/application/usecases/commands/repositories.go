// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// transition, aggregate recompute, audit, and persistence.
package commands

import (
	"context"

	"fieldservice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// ActivityLogFactory provides access to the audit sink within a transaction.
	// Audit entries commit and roll back together with the transition they describe.
	ActivityLogFactory interface {
		ActivityLog() ports.ActivityLog
	}

	// UoW manages transactions across the assignment and work order
	// aggregates plus the audit log. Every workflow operation runs inside
	// exactly one UoW: read assignment, validate and mutate, recompute
	// the aggregate, persist both, append the audit entry.
	UoW interface {
		TxManager
		WorkOrderRepoFactory
		AssignmentRepoFactory
		ActivityLogFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
