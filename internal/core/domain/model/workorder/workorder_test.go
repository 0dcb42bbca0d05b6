package workorder_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkOrder(t *testing.T) {
	t.Run("should create work order in Created status", func(t *testing.T) {
		id := kernel.NewUUID()

		wo, err := workorder.NewWorkOrder(id)

		require.NoError(t, err)
		assert.Equal(t, id, wo.ID())
		assert.Equal(t, workorder.Created, wo.Status())
		assert.Nil(t, wo.ActualCompletionDate())
		assert.False(t, wo.IsCanceled())
	})

	t.Run("should reject empty id", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(kernel.UUID{})

		require.Error(t, err)
	})
}

func TestWorkOrder_Validate(t *testing.T) {
	t.Run("should reject zero-value work order", func(t *testing.T) {
		var wo workorder.WorkOrder

		require.ErrorIs(t, wo.Validate(), workorder.ErrWorkOrderIsNotConstructed)
	})
}

func TestWorkOrder_ApplyStatus(t *testing.T) {
	t.Run("should apply aggregator output", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, wo.ApplyStatus(workorder.InProgress))
		assert.Equal(t, workorder.InProgress, wo.Status())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		require.Error(t, wo.ApplyStatus(workorder.Unknown))
		assert.Equal(t, workorder.Created, wo.Status())
	})

	t.Run("should freeze status after cancel", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, wo.Cancel())

		err = wo.ApplyStatus(workorder.Completed)

		require.ErrorIs(t, err, workorder.ErrWorkOrderIsCanceled)
		assert.Equal(t, workorder.Canceled, wo.Status())
	})
}

func TestWorkOrder_Cancel(t *testing.T) {
	t.Run("should cancel once", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, wo.Cancel())
		assert.True(t, wo.IsCanceled())
	})

	t.Run("should fail AlreadyInTargetState on second cancel", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, wo.Cancel())

		err = wo.Cancel()

		require.Error(t, err)
		kind, ok := errs.TransitionKindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.AlreadyInTargetState, kind)
	})
}

func TestWorkOrder_StampActualCompletionDate(t *testing.T) {
	t.Run("should stamp once", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
		require.NoError(t, wo.StampActualCompletionDate(at))

		require.NotNil(t, wo.ActualCompletionDate())
		assert.True(t, wo.ActualCompletionDate().Equal(at))
	})

	t.Run("should reject second stamp", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, wo.StampActualCompletionDate(time.Now()))

		err = wo.StampActualCompletionDate(time.Now())

		require.ErrorIs(t, err, workorder.ErrCompletionDateAlreadySet)
	})
}

func TestWorkOrder_Diff(t *testing.T) {
	t.Run("should report nothing when unchanged", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		before := wo.TakeSnapshot()

		assert.Empty(t, wo.Diff(before))
	})

	t.Run("should report status change as old and new keys", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		before := wo.TakeSnapshot()
		require.NoError(t, wo.ApplyStatus(workorder.Assigned))

		changes := wo.Diff(before)
		require.Len(t, changes, 1)
		assert.Equal(t, "status", changes[0].Field)
		assert.Equal(t, "wo_status.created", changes[0].Old)
		assert.Equal(t, "wo_status.assigned", changes[0].New)
	})

	t.Run("should report completion date stamp", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(kernel.NewUUID())
		require.NoError(t, err)

		before := wo.TakeSnapshot()
		require.NoError(t, wo.StampActualCompletionDate(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)))

		changes := wo.Diff(before)
		require.Len(t, changes, 1)
		assert.Equal(t, "actual_completion_date", changes[0].Field)
		assert.Empty(t, changes[0].Old)
		assert.NotEmpty(t, changes[0].New)
	})
}

func TestRestoreWorkOrder(t *testing.T) {
	t.Run("should restore full state", func(t *testing.T) {
		id := kernel.NewUUID()
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		ref := "PU-1042"

		wo, err := workorder.RestoreWorkOrder(id, workorder.Completed, "invoice_status.billed", &at, &ref, true)

		require.NoError(t, err)
		assert.Equal(t, workorder.Completed, wo.Status())
		assert.Equal(t, "invoice_status.billed", wo.InvoiceStatus())
		assert.Equal(t, &ref, wo.PickupReference())
		assert.True(t, wo.RequiresCompletionCode())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := workorder.RestoreWorkOrder(kernel.NewUUID(), workorder.Unknown, "", nil, nil, false)

		require.Error(t, err)
	})
}
