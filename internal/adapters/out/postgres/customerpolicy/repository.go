// Package customerpolicy reads the per-customer configuration that gates
// workflow operations. The policy columns live on the work order row, where
// the importer denormalizes them from the customer master data.
package customerpolicy

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

type policyRow struct {
	RequiresCompletionCode  bool
	AutoFillWorkDescription string
}

// GormCustomerPolicy implements CustomerPolicy using GORM.
type GormCustomerPolicy struct {
	db *gorm.DB
}

// NewGormCustomerPolicy creates a policy reader bound to the given database.
func NewGormCustomerPolicy(db *gorm.DB) *GormCustomerPolicy {
	return &GormCustomerPolicy{db: db}
}

// RequiresCompletionCode reports whether completing an assignment of this
// work order requires a completion code.
func (p *GormCustomerPolicy) RequiresCompletionCode(ctx context.Context, workOrderID kernel.UUID) (bool, error) {
	row, err := p.load(ctx, workOrderID)
	if err != nil {
		return false, err
	}
	return row.RequiresCompletionCode, nil
}

// AutoFillWorkDescription returns the configured default work description,
// or an empty string when auto-fill is not allowed for this customer.
func (p *GormCustomerPolicy) AutoFillWorkDescription(ctx context.Context, workOrderID kernel.UUID) (string, error) {
	row, err := p.load(ctx, workOrderID)
	if err != nil {
		return "", err
	}
	return row.AutoFillWorkDescription, nil
}

func (p *GormCustomerPolicy) load(ctx context.Context, workOrderID kernel.UUID) (policyRow, error) {
	if err := workOrderID.Validate(); err != nil {
		return policyRow{}, err
	}

	var row policyRow
	err := p.db.WithContext(ctx).
		Table("work_orders").
		Select("requires_completion_code", "auto_fill_work_description").
		Where("id = ?", workOrderID.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policyRow{}, errs.NewObjectNotFoundError("workOrder", workOrderID.String())
		}
		return policyRow{}, err
	}

	return row, nil
}
