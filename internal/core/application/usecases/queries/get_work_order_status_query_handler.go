package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

// GetWorkOrderStatusQueryHandler loads the status view of one work order.
// Uses direct SQL for read performance; status ids are resolved to their
// catalog keys in the query itself.
type GetWorkOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkOrderStatusQueryHandler creates a handler for work order status queries.
func NewGetWorkOrderStatusQueryHandler(db *gorm.DB) GetWorkOrderStatusQueryHandler {
	return GetWorkOrderStatusQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound when the work order
// does not exist. Assignment rows come back ordered by priority;
// disabled and canceled rows are included so callers see the full picture.
func (h GetWorkOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetWorkOrderStatusQuery,
) (GetWorkOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkOrderStatusQueryResponse{}, err
	}

	var response GetWorkOrderStatusQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			wo.id,
			sc.key,
			wo.invoice_status,
			wo.actual_completion_date
		FROM work_orders wo
		JOIN status_catalog sc ON sc.id = wo.status_id
		WHERE wo.id = ?
	`, query.WorkOrderID().Bytes()).Row()

	var id uuid.UUID
	var completionDate sql.NullTime
	err := row.Scan(&id, &response.StatusKey, &response.InvoiceStatus, &completionDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetWorkOrderStatusQueryResponse{},
				errs.NewObjectNotFoundError("workOrderID", query.WorkOrderID())
		}
		return GetWorkOrderStatusQueryResponse{}, err
	}

	workOrderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetWorkOrderStatusQueryResponse{}, err
	}
	response.WorkOrderID = workOrderID
	if completionDate.Valid {
		at := completionDate.Time
		response.ActualCompletionDate = &at
	}

	assignments, err := h.loadAssignments(ctx, query.WorkOrderID())
	if err != nil {
		return GetWorkOrderStatusQueryResponse{}, err
	}
	response.Assignments = assignments

	return response, nil
}

func (h GetWorkOrderStatusQueryHandler) loadAssignments(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]AssignmentStatusResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.person_id,
			a.person_kind,
			a.job_type,
			sc.key,
			a.priority,
			a.disabled,
			a.completed_at
		FROM assignments a
		JOIN status_catalog sc ON sc.id = a.status_id
		WHERE a.work_order_id = ?
		ORDER BY a.priority, a.created_at
	`, workOrderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]AssignmentStatusResponse, 0)

	for rows.Next() {
		var item AssignmentStatusResponse
		var id, personID uuid.UUID
		var personKind, jobType int
		var completedAt sql.NullTime

		err = rows.Scan(
			&id,
			&personID,
			&personKind,
			&jobType,
			&item.StatusKey,
			&item.Priority,
			&item.Disabled,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		item.PersonKind = assignment.PersonKind(personKind).String()
		item.JobType = assignment.JobType(jobType).String()

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.PersonID, err = kernel.UUIDFromBytes(personID[:]); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			at := completedAt.Time
			item.CompletedAt = &at
		}

		assignments = append(assignments, item)
	}

	return assignments, rows.Err()
}
