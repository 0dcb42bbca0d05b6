// Package activityrepo persists the audit trail. Entries are append-only
// and written inside the same transaction as the status transition they
// describe.
package activityrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/kernel"
)

// ActivityEntryDTO represents one audit entry row.
type ActivityEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType string    `gorm:"index:idx_activity_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_activity_entity"`
	Message    string
	ActorID    uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for audit entries.
func (ActivityEntryDTO) TableName() string {
	return "activity_log"
}

// GormActivityLog implements ActivityLog using GORM.
type GormActivityLog struct {
	db *gorm.DB
}

// NewGormActivityLog creates an audit sink bound to the given connection,
// usually a transaction handle.
func NewGormActivityLog(db *gorm.DB) *GormActivityLog {
	return &GormActivityLog{db: db}
}

// Append writes one audit entry.
func (l *GormActivityLog) Append(
	ctx context.Context,
	entityType string,
	entityID kernel.UUID,
	message string,
	actorID kernel.UUID,
) error {
	dto := ActivityEntryDTO{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID.Bytes(),
		Message:    message,
		ActorID:    actorID.Bytes(),
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
