package assignmentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	catalog ports.TypeCatalog
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(
	db *gorm.DB,
	catalog ports.TypeCatalog,
	tracker aggregateTracker,
) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		catalog: catalog,
		tracker: tracker,
	}
}

// Add saves a new assignment record to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, record *assignment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	statusID, err := r.catalog.IDOf(ctx, record.StatusKey())
	if err != nil {
		return err
	}

	dto := fromDomain(record, statusID)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update saves an existing assignment record to the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, record *assignment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	statusID, err := r.catalog.IDOf(ctx, record.StatusKey())
	if err != nil {
		return err
	}

	dto := fromDomain(record, statusID)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves an assignment record by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return r.toDomain(ctx, dto)
}

// GetByWorkOrder retrieves every assignment record of a work order, disabled
// ones included, ordered by priority.
func (r *GormAssignmentRepository) GetByWorkOrder(
	ctx context.Context,
	workOrderID kernel.UUID,
) ([]*assignment.Record, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Order("priority, created_at").
		Find(&dtos, "work_order_id = ?", workOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(ctx, dtos)
}

// GetActiveByPerson retrieves a person's active records ordered by priority.
// Active means not disabled and not in a canceled status.
func (r *GormAssignmentRepository) GetActiveByPerson(
	ctx context.Context,
	personID kernel.UUID,
) ([]*assignment.Record, error) {
	if err := personID.Validate(); err != nil {
		return nil, err
	}

	canceledIDs, err := r.canceledStatusIDs(ctx)
	if err != nil {
		return nil, err
	}

	var dtos []AssignmentDTO
	err = r.db.WithContext(ctx).
		Where("person_id = ? AND NOT disabled AND status_id NOT IN ?",
			personID.Bytes(), canceledIDs).
		Order("priority, created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(ctx, dtos)
}

// NextPriority returns MAX(priority)+1 over the person's records, evaluated
// inside the enclosing transaction.
func (r *GormAssignmentRepository) NextPriority(ctx context.Context, personID kernel.UUID) (int, error) {
	if err := personID.Validate(); err != nil {
		return 0, err
	}

	var next int
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Select("COALESCE(MAX(priority), 0) + 1").
		Where("person_id = ?", personID.Bytes()).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}

func (r *GormAssignmentRepository) toDomain(ctx context.Context, dto AssignmentDTO) (*assignment.Record, error) {
	statusKey, err := r.catalog.KeyOf(ctx, dto.StatusID)
	if err != nil {
		return nil, err
	}
	return toDomain(dto, statusKey)
}

func (r *GormAssignmentRepository) toDomainAll(ctx context.Context, dtos []AssignmentDTO) ([]*assignment.Record, error) {
	records := make([]*assignment.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := r.toDomain(ctx, dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *GormAssignmentRepository) canceledStatusIDs(ctx context.Context) ([]int, error) {
	ids := make([]int, 0, 2)
	for _, key := range []string{
		assignment.WorkCanceled.Key(),
		assignment.QuoteCanceled.Key(),
	} {
		id, err := r.catalog.IDOf(ctx, key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
