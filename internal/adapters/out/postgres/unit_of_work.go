// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Every workflow operation runs inside exactly one unit of work: read the
// assignment, validate and mutate, recompute the aggregate, persist both,
// append the audit entry. The work order row lock taken via GetForUpdate is
// held for the lifetime of the transaction.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, catalog)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.AssignmentRepository().Update(ctx, record); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"gorm.io/gorm"

	"fieldservice/internal/adapters/out/postgres/activityrepo"
	"fieldservice/internal/adapters/out/postgres/assignmentrepo"
	"fieldservice/internal/adapters/out/postgres/workorderrepo"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Useful for implementing patterns like event sourcing or the outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh instance with proper
// isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	catalog ports.TypeCatalog
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The catalog resolves status keys to storage ids inside the
// repositories.
func NewGormUnitOfWorkFactory(db *gorm.DB, catalog ports.TypeCatalog) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, catalog: catalog}
}

// Create produces a new UnitOfWork instance. Each instance maintains its own
// transaction state and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		catalog:           f.catalog,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	catalog           ports.TypeCatalog
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// WorkOrderRepository returns a work order repository bound to the current
// transaction if one is active, otherwise to the main connection.
func (uow *GormUnitOfWork) WorkOrderRepository() ports.WorkOrderRepository {
	return workorderrepo.NewGormWorkOrderRepository(uow.handle(), uow.catalog, uow)
}

// AssignmentRepository returns an assignment repository bound to the current
// transaction if one is active, otherwise to the main connection.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.handle(), uow.catalog, uow)
}

// ActivityLog returns an audit sink bound to the current transaction, so
// audit entries commit and roll back together with the transition they
// describe.
func (uow *GormUnitOfWork) ActivityLog() ports.ActivityLog {
	return activityrepo.NewGormActivityLog(uow.handle())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) handle() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
