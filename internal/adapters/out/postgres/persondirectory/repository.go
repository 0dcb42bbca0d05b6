// Package persondirectory resolves person ids to their kind. Person master
// data is owned by an upstream system; this adapter only reads the locally
// replicated persons table.
package persondirectory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

// PersonDTO represents one row of the replicated persons table.
type PersonDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind int
	Name string
}

// TableName specifies the database table name for person entities.
func (PersonDTO) TableName() string {
	return "persons"
}

// GormPersonDirectory implements PersonDirectory using GORM.
type GormPersonDirectory struct {
	db *gorm.DB
}

// NewGormPersonDirectory creates a directory bound to the given database.
func NewGormPersonDirectory(db *gorm.DB) *GormPersonDirectory {
	return &GormPersonDirectory{db: db}
}

// KindOf resolves a person's kind. Unknown persons fail ObjectNotFound; a
// row carrying an invalid kind value fails validation rather than leaking
// into the domain.
func (d *GormPersonDirectory) KindOf(ctx context.Context, personID kernel.UUID) (assignment.PersonKind, error) {
	if err := personID.Validate(); err != nil {
		return assignment.KindUnknown, err
	}

	var dto PersonDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", personID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignment.KindUnknown, errs.NewObjectNotFoundError("person", personID.String())
		}
		return assignment.KindUnknown, err
	}

	kind := assignment.PersonKind(dto.Kind)
	if err := kind.Validate(); err != nil {
		return assignment.KindUnknown, err
	}

	return kind, nil
}
