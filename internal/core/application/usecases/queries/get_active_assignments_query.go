package queries

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetActiveAssignmentsQueryIsNotConstructed = errors.New(
	"GetActiveAssignmentsQuery must be created via NewGetActiveAssignmentsQuery constructor",
)

// GetActiveAssignmentsQuery retrieves a person's active assignments: not
// disabled and not in a canceled status, across all work orders. This is
// the work list a technician's mobile client renders, ordered by priority.
type GetActiveAssignmentsQuery struct {
	personID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentsQuery creates a query for a person's work list.
func NewGetActiveAssignmentsQuery(personID kernel.UUID) (GetActiveAssignmentsQuery, error) {
	if err := personID.Validate(); err != nil {
		return GetActiveAssignmentsQuery{}, err
	}

	return GetActiveAssignmentsQuery{
		personID: personID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// PersonID returns the person whose work list to load.
func (q GetActiveAssignmentsQuery) PersonID() kernel.UUID { return q.personID }

// Validate ensures the query was created through the constructor.
func (q GetActiveAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentsQueryIsNotConstructed)
}

// GetActiveAssignmentsQueryResponse is one row of a person's work list.
type GetActiveAssignmentsQueryResponse struct {
	ID              kernel.UUID
	WorkOrderID     kernel.UUID
	JobType         string
	StatusKey       string
	Priority        int
	WorkDescription string
}
