// Package assignmentrepo persists assignment records. The status is stored
// as a status catalog id; which vocabulary the id belongs to follows from
// the record's job type.
package assignmentrepo

import (
	"time"

	"github.com/google/uuid"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
)

// AssignmentDTO represents the database structure for persisting assignment
// records. Canceled records stay in the table soft-disabled; nothing is
// ever deleted.
type AssignmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID     uuid.UUID `gorm:"type:uuid;index"`
	PersonID        uuid.UUID `gorm:"type:uuid;index"`
	PersonKind      int
	JobType         int
	StatusID        int `gorm:"index"`
	Priority        int
	WorkDescription string
	CompletionCode  string
	CancelReason    string
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
	Disabled        bool
	DisabledAt      *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment record to its database representation.
// statusID is the catalog id of the record's current status key.
func fromDomain(record *assignment.Record, statusID int) AssignmentDTO {
	return AssignmentDTO{
		ID:              record.ID().Bytes(),
		WorkOrderID:     record.WorkOrderID().Bytes(),
		PersonID:        record.PersonID().Bytes(),
		PersonKind:      int(record.PersonKind()),
		JobType:         int(record.JobType()),
		StatusID:        statusID,
		Priority:        record.Priority(),
		WorkDescription: record.WorkDescription(),
		CompletionCode:  record.CompletionCode(),
		CancelReason:    record.CancelReason(),
		ConfirmedAt:     record.ConfirmedAt(),
		CompletedAt:     record.CompletedAt(),
		Disabled:        record.Disabled(),
		DisabledAt:      record.DisabledAt(),
	}
}

// toDomain converts a database DTO to an assignment record. statusKey is the
// catalog key resolved from the DTO's status id; it is parsed against the
// vocabulary the record's job type selects.
func toDomain(dto AssignmentDTO, statusKey string) (*assignment.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}
	personID, err := kernel.UUIDFromBytes(dto.PersonID[:])
	if err != nil {
		return nil, err
	}

	jobType := assignment.JobType(dto.JobType)

	var workStatus assignment.WorkStatus
	var quoteStatus assignment.QuoteStatus
	if jobType.IsQuote() {
		if quoteStatus, err = assignment.QuoteStatusFromKey(statusKey); err != nil {
			return nil, err
		}
	} else {
		if workStatus, err = assignment.WorkStatusFromKey(statusKey); err != nil {
			return nil, err
		}
	}

	return assignment.RestoreRecord(
		id,
		workOrderID,
		personID,
		assignment.PersonKind(dto.PersonKind),
		jobType,
		workStatus,
		quoteStatus,
		dto.Priority,
		dto.WorkDescription,
		dto.CompletionCode,
		dto.CancelReason,
		dto.ConfirmedAt,
		dto.CompletedAt,
		dto.Disabled,
		dto.DisabledAt,
	)
}
