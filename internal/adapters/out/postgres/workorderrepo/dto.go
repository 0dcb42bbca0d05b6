// Package workorderrepo persists work order aggregates. Statuses are stored
// as status catalog ids, resolved through the TypeCatalog port; the domain
// never sees the numeric ids.
package workorderrepo

import (
	"time"

	"github.com/google/uuid"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
)

// WorkOrderDTO represents the database structure for persisting work orders.
// The customer policy columns (requires_completion_code,
// auto_fill_work_description) are read by the policy adapter and carried
// through here unchanged on writes.
type WorkOrderDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StatusID                int       `gorm:"index"`
	InvoiceStatus           string
	ActualCompletionDate    *time.Time
	PickupReference         *string
	RequiresCompletionCode  bool
	AutoFillWorkDescription string
}

// TableName specifies the database table name for work order entities.
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// fromDomain converts a work order aggregate to its database representation.
// statusID is the catalog id of the aggregate's current status key.
func fromDomain(aggregate *workorder.WorkOrder, statusID int) WorkOrderDTO {
	return WorkOrderDTO{
		ID:                     aggregate.ID().Bytes(),
		StatusID:               statusID,
		InvoiceStatus:          aggregate.InvoiceStatus(),
		ActualCompletionDate:   aggregate.ActualCompletionDate(),
		PickupReference:        aggregate.PickupReference(),
		RequiresCompletionCode: aggregate.RequiresCompletionCode(),
	}
}

// toDomain converts a database DTO to a work order aggregate. statusKey is
// the catalog key resolved from the DTO's status id.
func toDomain(dto WorkOrderDTO, statusKey string) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := workorder.StatusFromKey(statusKey)
	if err != nil {
		return nil, err
	}

	return workorder.RestoreWorkOrder(
		id,
		status,
		dto.InvoiceStatus,
		dto.ActualCompletionDate,
		dto.PickupReference,
		dto.RequiresCompletionCode,
	)
}
