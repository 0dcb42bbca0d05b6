package assignment_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkRecord(t *testing.T, kind assignment.PersonKind, description string) *assignment.Record {
	t.Helper()

	record, err := assignment.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kind, assignment.Work, description)
	require.NoError(t, err)
	return record
}

func newQuoteRecord(t *testing.T) *assignment.Record {
	t.Helper()

	record, err := assignment.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		assignment.Vendor, assignment.Quote, "quote for compressor")
	require.NoError(t, err)
	return record
}

func TestNewRecord(t *testing.T) {
	t.Run("should start work record in Assigned", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		assert.Equal(t, assignment.WorkAssigned, record.WorkStatus())
		assert.Equal(t, "wo_vendor_status.assigned", record.StatusKey())
		assert.True(t, record.IsActive())
		assert.False(t, record.IsCompleted())
	})

	t.Run("should start quote record in RfqAssigned", func(t *testing.T) {
		record := newQuoteRecord(t)

		assert.Equal(t, assignment.RfqAssigned, record.QuoteStatus())
		assert.Equal(t, "wo_rfq_status.assigned", record.StatusKey())
	})

	t.Run("should reject invalid person kind", func(t *testing.T) {
		_, err := assignment.NewRecord(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			assignment.KindUnknown, assignment.Work, "")

		require.Error(t, err)
	})
}

func TestRecord_Issue(t *testing.T) {
	t.Run("should issue with existing description", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		require.NoError(t, record.Issue(""))
		assert.Equal(t, assignment.WorkIssued, record.WorkStatus())
	})

	t.Run("should auto-fill missing description when allowed", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "")

		require.NoError(t, record.Issue("standard service visit"))
		assert.Equal(t, assignment.WorkIssued, record.WorkStatus())
		assert.Equal(t, "standard service visit", record.WorkDescription())
	})

	t.Run("should fail PreconditionMissing without description or auto-fill", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "")

		err := record.Issue("")

		requireTransitionKind(t, err, errs.PreconditionMissing)
		assert.Equal(t, assignment.WorkAssigned, record.WorkStatus())
	})

	t.Run("should issue quote without description guard", func(t *testing.T) {
		record := newQuoteRecord(t)

		require.NoError(t, record.Issue(""))
		assert.Equal(t, assignment.RfqIssued, record.QuoteStatus())
	})
}

func TestRecord_Confirm(t *testing.T) {
	t.Run("should confirm by assigned person and stamp timestamp", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")
		require.NoError(t, record.Issue(""))

		at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, record.Confirm(record.PersonID(), at))

		assert.Equal(t, assignment.WorkConfirmed, record.WorkStatus())
		require.NotNil(t, record.ConfirmedAt())
		assert.True(t, record.ConfirmedAt().Equal(at))
	})

	t.Run("should fail NotAuthorized for a different actor", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")
		require.NoError(t, record.Issue(""))

		err := record.Confirm(kernel.NewUUID(), time.Now())

		requireTransitionKind(t, err, errs.NotAuthorized)
		assert.Equal(t, assignment.WorkIssued, record.WorkStatus())
		assert.Nil(t, record.ConfirmedAt())
	})

	t.Run("should allow anyone to confirm a quote", func(t *testing.T) {
		record := newQuoteRecord(t)

		require.NoError(t, record.Confirm(kernel.NewUUID(), time.Now()))
		assert.Equal(t, assignment.RfqConfirmed, record.QuoteStatus())
	})
}

func TestRecord_StartAndHold(t *testing.T) {
	t.Run("should fail UnknownStatusLabel for quotes", func(t *testing.T) {
		record := newQuoteRecord(t)

		requireTransitionKind(t, record.Start(), errs.UnknownStatusLabel)
		requireTransitionKind(t, record.Hold(), errs.UnknownStatusLabel)
	})

	t.Run("should walk InProgress and hold cycle", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")
		require.NoError(t, record.Issue(""))
		require.NoError(t, record.Confirm(record.PersonID(), time.Now()))

		require.NoError(t, record.Start())
		require.NoError(t, record.Hold())
		assert.Equal(t, assignment.WorkInProgressAndHold, record.WorkStatus())

		require.NoError(t, record.Start())
		assert.Equal(t, assignment.WorkInProgress, record.WorkStatus())
	})
}

func TestRecord_Complete(t *testing.T) {
	t.Run("should stamp completion date and code", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Supplier, "deliver parts")

		at := time.Date(2026, 4, 2, 16, 30, 0, 0, time.UTC)
		require.NoError(t, record.Complete(at, "CC-42"))

		assert.True(t, record.IsCompleted())
		assert.Equal(t, "CC-42", record.CompletionCode())
		require.NotNil(t, record.CompletedAt())
		assert.True(t, record.CompletedAt().Equal(at))
	})

	t.Run("should fail for technician straight from Assigned", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		err := record.Complete(time.Now(), "")

		requireTransitionKind(t, err, errs.InvalidTransition)
	})

	t.Run("should move quote to RfqReceived", func(t *testing.T) {
		record := newQuoteRecord(t)

		require.NoError(t, record.Complete(time.Now(), ""))
		assert.Equal(t, assignment.RfqReceived, record.QuoteStatus())
		assert.True(t, record.IsCompleted())
	})
}

func TestRecord_Cancel(t *testing.T) {
	t.Run("should require a reason", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		err := record.Cancel("", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, record.IsActive())
	})

	t.Run("should soft-disable the record", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		at := time.Date(2026, 4, 3, 8, 0, 0, 0, time.UTC)
		require.NoError(t, record.Cancel("customer declined", at))

		assert.Equal(t, assignment.WorkCanceled, record.WorkStatus())
		assert.Equal(t, "customer declined", record.CancelReason())
		assert.True(t, record.Disabled())
		assert.False(t, record.IsActive())
	})

	t.Run("should cancel a quote even after the quote was received", func(t *testing.T) {
		record := newQuoteRecord(t)
		require.NoError(t, record.Complete(time.Now(), ""))

		at := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
		require.NoError(t, record.Cancel("customer withdrew", at))

		assert.Equal(t, assignment.QuoteCanceled, record.QuoteStatus())
		assert.Equal(t, "customer withdrew", record.CancelReason())
		assert.True(t, record.Disabled())
		require.NotNil(t, record.DisabledAt())
		assert.True(t, record.DisabledAt().Equal(at))
	})

	t.Run("should fail AlreadyInTargetState on second cancel", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")
		require.NoError(t, record.Cancel("customer declined", time.Now()))

		err := record.Cancel("again", time.Now())

		requireTransitionKind(t, err, errs.AlreadyInTargetState)
	})
}

func TestRecord_ForceSet(t *testing.T) {
	t.Run("should bypass guards for work records", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		at := time.Date(2026, 4, 4, 12, 0, 0, 0, time.UTC)
		require.NoError(t, record.ForceSetWork(assignment.WorkCompleted, at))

		assert.True(t, record.IsCompleted())
		require.NotNil(t, record.CompletedAt())
		assert.True(t, record.CompletedAt().Equal(at))
	})

	t.Run("should disable on forced cancel", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Technician, "replace filter")

		require.NoError(t, record.ForceSetWork(assignment.WorkCanceled, time.Now()))
		assert.False(t, record.IsActive())
	})

	t.Run("should reject cross-vocabulary force writes", func(t *testing.T) {
		workRecord := newWorkRecord(t, assignment.Technician, "replace filter")
		quoteRecord := newQuoteRecord(t)

		requireTransitionKind(t,
			workRecord.ForceSetQuote(assignment.RfqReceived, time.Now()), errs.UnknownStatusLabel)
		requireTransitionKind(t,
			quoteRecord.ForceSetWork(assignment.WorkCompleted, time.Now()), errs.UnknownStatusLabel)
	})

	t.Run("should not overwrite an existing completion timestamp", func(t *testing.T) {
		record := newWorkRecord(t, assignment.Supplier, "deliver parts")
		first := time.Date(2026, 4, 2, 16, 30, 0, 0, time.UTC)
		require.NoError(t, record.Complete(first, ""))

		require.NoError(t, record.ForceSetWork(assignment.WorkCompleted, time.Now()))
		assert.True(t, record.CompletedAt().Equal(first))
	})
}

func TestRestoreRecord_VocabularyMismatch(t *testing.T) {
	t.Run("should reject quote with work status", func(t *testing.T) {
		_, err := assignment.RestoreRecord(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			assignment.Vendor, assignment.Quote,
			assignment.WorkAssigned, assignment.RfqAssigned,
			1, "", "", "", nil, nil, false, nil)

		require.ErrorIs(t, err, assignment.ErrVocabularyMismatch)
	})

	t.Run("should reject work with quote status", func(t *testing.T) {
		_, err := assignment.RestoreRecord(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			assignment.Technician, assignment.Work,
			assignment.WorkAssigned, assignment.RfqAssigned,
			1, "", "", "", nil, nil, false, nil)

		require.ErrorIs(t, err, assignment.ErrVocabularyMismatch)
	})
}

func TestRecord_SetPriorityIfUnset(t *testing.T) {
	record := newWorkRecord(t, assignment.Technician, "replace filter")

	record.SetPriorityIfUnset(3)
	assert.Equal(t, 3, record.Priority())

	record.SetPriorityIfUnset(9)
	assert.Equal(t, 3, record.Priority())
}
