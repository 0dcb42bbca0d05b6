package assignment_test

import (
	"fmt"
	"testing"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTransitionKind(t *testing.T, err error, want errs.TransitionKind) {
	t.Helper()

	require.Error(t, err)
	kind, ok := errs.TransitionKindOf(err)
	require.True(t, ok, "expected a transition error, got %v", err)
	assert.Equal(t, want, kind)
}

func TestWorkStatus_Issue(t *testing.T) {
	t.Run("should issue from Assigned", func(t *testing.T) {
		next, err := assignment.WorkAssigned.Issue(assignment.Technician)

		require.NoError(t, err)
		assert.Equal(t, assignment.WorkIssued, next)
	})

	t.Run("should fail AlreadyInTargetState when already issued", func(t *testing.T) {
		_, err := assignment.WorkIssued.Issue(assignment.Technician)

		requireTransitionKind(t, err, errs.AlreadyInTargetState)
	})

	t.Run("should fail InvalidTransition from later statuses", func(t *testing.T) {
		for _, from := range []assignment.WorkStatus{
			assignment.WorkConfirmed,
			assignment.WorkInProgress,
			assignment.WorkCompleted,
			assignment.WorkCanceled,
		} {
			_, err := from.Issue(assignment.Technician)
			requireTransitionKind(t, err, errs.InvalidTransition)
		}
	})
}

func TestWorkStatus_Confirm(t *testing.T) {
	t.Run("should confirm from Issued", func(t *testing.T) {
		next, err := assignment.WorkIssued.Confirm(assignment.Technician)

		require.NoError(t, err)
		assert.Equal(t, assignment.WorkConfirmed, next)
	})

	t.Run("should fail AlreadyInTargetState when already confirmed", func(t *testing.T) {
		_, err := assignment.WorkConfirmed.Confirm(assignment.Technician)

		requireTransitionKind(t, err, errs.AlreadyInTargetState)
	})

	t.Run("should fail InvalidTransition from Assigned", func(t *testing.T) {
		_, err := assignment.WorkAssigned.Confirm(assignment.Technician)

		requireTransitionKind(t, err, errs.InvalidTransition)
	})
}

func TestWorkStatus_StartAndHold(t *testing.T) {
	t.Run("should start from Confirmed", func(t *testing.T) {
		next, err := assignment.WorkConfirmed.Start(assignment.Technician)

		require.NoError(t, err)
		assert.Equal(t, assignment.WorkInProgress, next)
	})

	t.Run("should resume from hold", func(t *testing.T) {
		next, err := assignment.WorkInProgressAndHold.Start(assignment.Technician)

		require.NoError(t, err)
		assert.Equal(t, assignment.WorkInProgress, next)
	})

	t.Run("should hold only from InProgress", func(t *testing.T) {
		next, err := assignment.WorkInProgress.Hold(assignment.Technician)
		require.NoError(t, err)
		assert.Equal(t, assignment.WorkInProgressAndHold, next)

		_, err = assignment.WorkConfirmed.Hold(assignment.Technician)
		requireTransitionKind(t, err, errs.InvalidTransition)
	})
}

func TestWorkStatus_Complete_PersonKindGate(t *testing.T) {
	cases := []struct {
		kind    assignment.PersonKind
		from    assignment.WorkStatus
		allowed bool
	}{
		// Technicians must traverse every intermediate step.
		{assignment.Technician, assignment.WorkAssigned, false},
		{assignment.Technician, assignment.WorkIssued, false},
		{assignment.Technician, assignment.WorkConfirmed, true},
		{assignment.Technician, assignment.WorkInProgress, true},
		{assignment.Technician, assignment.WorkInProgressAndHold, true},

		// Suppliers may complete straight from Assigned.
		{assignment.Supplier, assignment.WorkAssigned, true},
		{assignment.Supplier, assignment.WorkIssued, false},
		{assignment.Supplier, assignment.WorkConfirmed, true},
		{assignment.Supplier, assignment.WorkInProgress, true},
		{assignment.Supplier, assignment.WorkInProgressAndHold, true},

		// Vendors may skip Confirmed.
		{assignment.Vendor, assignment.WorkAssigned, false},
		{assignment.Vendor, assignment.WorkIssued, true},
		{assignment.Vendor, assignment.WorkConfirmed, true},
		{assignment.Vendor, assignment.WorkInProgress, true},
		{assignment.Vendor, assignment.WorkInProgressAndHold, true},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%s completing from %s", tc.kind, tc.from)
		t.Run(name, func(t *testing.T) {
			next, err := tc.from.Complete(tc.kind)

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, assignment.WorkCompleted, next)
			} else {
				requireTransitionKind(t, err, errs.InvalidTransition)
			}
		})
	}

	t.Run("should fail AlreadyInTargetState when already completed", func(t *testing.T) {
		_, err := assignment.WorkCompleted.Complete(assignment.Technician)

		requireTransitionKind(t, err, errs.AlreadyInTargetState)
	})
}

func TestWorkStatus_Cancel(t *testing.T) {
	t.Run("should cancel from any non-terminal status", func(t *testing.T) {
		for _, from := range []assignment.WorkStatus{
			assignment.WorkAssigned,
			assignment.WorkIssued,
			assignment.WorkConfirmed,
			assignment.WorkInProgress,
			assignment.WorkInProgressAndHold,
		} {
			next, err := from.Cancel(assignment.Technician)
			require.NoError(t, err)
			assert.Equal(t, assignment.WorkCanceled, next)
		}
	})

	t.Run("should fail AlreadyInTargetState when already canceled", func(t *testing.T) {
		_, err := assignment.WorkCanceled.Cancel(assignment.Technician)

		requireTransitionKind(t, err, errs.AlreadyInTargetState)
	})

	t.Run("should fail InvalidTransition when completed", func(t *testing.T) {
		_, err := assignment.WorkCompleted.Cancel(assignment.Technician)

		requireTransitionKind(t, err, errs.InvalidTransition)
	})
}

func TestWorkStatusFromKey(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for _, status := range []assignment.WorkStatus{
			assignment.WorkAssigned,
			assignment.WorkIssued,
			assignment.WorkConfirmed,
			assignment.WorkInProgress,
			assignment.WorkInProgressAndHold,
			assignment.WorkCompleted,
			assignment.WorkCanceled,
		} {
			parsed, err := assignment.WorkStatusFromKey(status.Key())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should fail UnknownStatusLabel for foreign keys", func(t *testing.T) {
		_, err := assignment.WorkStatusFromKey("wo_rfq_status.assigned")

		requireTransitionKind(t, err, errs.UnknownStatusLabel)
	})
}
