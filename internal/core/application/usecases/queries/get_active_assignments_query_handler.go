package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
)

// GetActiveAssignmentsQueryHandler loads a person's active work list with
// direct SQL. Canceled statuses are excluded by key prefix match against
// the catalog, so the filter stays in step with the status vocabulary.
type GetActiveAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentsQueryHandler creates a handler for work list queries.
func NewGetActiveAssignmentsQueryHandler(db *gorm.DB) GetActiveAssignmentsQueryHandler {
	return GetActiveAssignmentsQueryHandler{db: db}
}

// Handle executes the query. Returns an empty slice when the person has no
// active assignments.
func (h GetActiveAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentsQuery,
) ([]GetActiveAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.work_order_id,
			a.job_type,
			sc.key,
			a.priority,
			a.work_description
		FROM assignments a
		JOIN status_catalog sc ON sc.id = a.status_id
		WHERE a.person_id = ?
		  AND NOT a.disabled
		  AND sc.key NOT IN (?, ?)
		ORDER BY a.priority, a.created_at
	`, query.PersonID().Bytes(),
		"wo_vendor_status.canceled", "wo_rfq_status.canceled").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]GetActiveAssignmentsQueryResponse, 0)

	for rows.Next() {
		var item GetActiveAssignmentsQueryResponse
		var id, workOrderID uuid.UUID
		var jobType int

		err = rows.Scan(
			&id,
			&workOrderID,
			&jobType,
			&item.StatusKey,
			&item.Priority,
			&item.WorkDescription,
		)
		if err != nil {
			return nil, err
		}

		item.JobType = assignment.JobType(jobType).String()

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.WorkOrderID, err = kernel.UUIDFromBytes(workOrderID[:]); err != nil {
			return nil, err
		}

		assignments = append(assignments, item)
	}

	return assignments, rows.Err()
}
