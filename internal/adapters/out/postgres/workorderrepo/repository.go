package workorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	catalog ports.TypeCatalog
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkOrderRepository creates a new GORM work order repository.
func NewGormWorkOrderRepository(
	db *gorm.DB,
	catalog ports.TypeCatalog,
	tracker aggregateTracker,
) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		catalog: catalog,
		tracker: tracker,
	}
}

// Add saves a new work order to the database.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	statusID, err := r.catalog.IDOf(ctx, aggregate.Status().Key())
	if err != nil {
		return err
	}

	dto := fromDomain(aggregate, statusID)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing work order to the database.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	statusID, err := r.catalog.IDOf(ctx, aggregate.Status().Key())
	if err != nil {
		return err
	}

	dto := fromDomain(aggregate, statusID)
	result := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a work order by ID.
func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a work order and takes a SELECT ... FOR UPDATE lock
// on its row. The lock is held until the enclosing transaction commits or
// rolls back, serializing concurrent aggregate recomputes on the same work
// order.
func (r *GormWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, id, true)
}

func (r *GormWorkOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto WorkOrderDTO
	if err := tx.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("workOrder", id.String())
		}
		return nil, err
	}

	statusKey, err := r.catalog.KeyOf(ctx, dto.StatusID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, statusKey)
}
