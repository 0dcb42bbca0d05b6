// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models and bypass the domain aggregates.
package queries

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetWorkOrderStatusQueryIsNotConstructed = errors.New(
	"GetWorkOrderStatusQuery must be created via NewGetWorkOrderStatusQuery constructor",
)

// GetWorkOrderStatusQuery retrieves the aggregate status of a work order
// together with the statuses of all its assignments, canceled and disabled
// ones included.
type GetWorkOrderStatusQuery struct {
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWorkOrderStatusQuery creates a query for one work order's status view.
func NewGetWorkOrderStatusQuery(workOrderID kernel.UUID) (GetWorkOrderStatusQuery, error) {
	if err := workOrderID.Validate(); err != nil {
		return GetWorkOrderStatusQuery{}, err
	}

	return GetWorkOrderStatusQuery{
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// WorkOrderID returns the work order to load.
func (q GetWorkOrderStatusQuery) WorkOrderID() kernel.UUID { return q.workOrderID }

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderStatusQueryIsNotConstructed)
}

// GetWorkOrderStatusQueryResponse is the status view of one work order.
type GetWorkOrderStatusQueryResponse struct {
	WorkOrderID          kernel.UUID
	StatusKey            string
	InvoiceStatus        string
	ActualCompletionDate *time.Time
	Assignments          []AssignmentStatusResponse
}

// AssignmentStatusResponse is the status view of one assignment row.
type AssignmentStatusResponse struct {
	ID          kernel.UUID
	PersonID    kernel.UUID
	PersonKind  string
	JobType     string
	StatusKey   string
	Priority    int
	Disabled    bool
	CompletedAt *time.Time
}
