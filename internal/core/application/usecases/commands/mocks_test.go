package commands_test

import (
	"context"
	"log/slog"
	"testing"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Every handler shares the same unit of work surface, so the mocks live in
// one place instead of being redeclared per test file.

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, record *assignment.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, record *assignment.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Record), args.Error(1)
}

func (m *MockAssignmentRepository) GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*assignment.Record, error) {
	args := m.Called(ctx, workOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Record), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByPerson(ctx context.Context, personID kernel.UUID) ([]*assignment.Record, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Record), args.Error(1)
}

func (m *MockAssignmentRepository) NextPriority(ctx context.Context, personID kernel.UUID) (int, error) {
	args := m.Called(ctx, personID)
	return args.Int(0), args.Error(1)
}

type MockActivityLog struct{ mock.Mock }

func (m *MockActivityLog) Append(ctx context.Context, entityType string, entityID kernel.UUID, message string, actorID kernel.UUID) error {
	args := m.Called(ctx, entityType, entityID, message, actorID)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) ActivityLog() ports.ActivityLog {
	args := m.Called()
	return args.Get(0).(ports.ActivityLog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPersonDirectory struct{ mock.Mock }

func (m *MockPersonDirectory) KindOf(ctx context.Context, personID kernel.UUID) (assignment.PersonKind, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).(assignment.PersonKind), args.Error(1)
}

type MockCustomerPolicy struct{ mock.Mock }

func (m *MockCustomerPolicy) RequiresCompletionCode(ctx context.Context, workOrderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, workOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerPolicy) AutoFillWorkDescription(ctx context.Context, workOrderID kernel.UUID) (string, error) {
	args := m.Called(ctx, workOrderID)
	return args.String(0), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) OnCompleted(actorID kernel.UUID, workOrderID kernel.UUID) {
	m.Called(actorID, workOrderID)
}

// testEnv bundles one fully wired mock unit of work. The accessor
// expectations are left unbounded because handlers fetch the repositories
// several times per transaction.
type testEnv struct {
	uow            *MockUoW
	factory        *MockUoWFactory
	workOrderRepo  *MockWorkOrderRepository
	assignmentRepo *MockAssignmentRepository
	activityLog    *MockActivityLog
}

func newTestEnv() *testEnv {
	env := &testEnv{
		uow:            new(MockUoW),
		factory:        new(MockUoWFactory),
		workOrderRepo:  new(MockWorkOrderRepository),
		assignmentRepo: new(MockAssignmentRepository),
		activityLog:    new(MockActivityLog),
	}

	env.factory.On("Create").Return(env.uow).Once()
	env.uow.On("WorkOrderRepository").Return(env.workOrderRepo)
	env.uow.On("AssignmentRepository").Return(env.assignmentRepo)
	env.uow.On("ActivityLog").Return(env.activityLog)

	return env
}

func (e *testEnv) assertExpectations(t *testing.T) {
	t.Helper()
	e.factory.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.workOrderRepo.AssertExpectations(t)
	e.assignmentRepo.AssertExpectations(t)
	e.activityLog.AssertExpectations(t)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testWorkOrder(t *testing.T, status workorder.Status) *workorder.WorkOrder {
	t.Helper()

	wo, err := workorder.RestoreWorkOrder(kernel.NewUUID(), status, "", nil, nil, false)
	require.NoError(t, err)
	return wo
}

func testWorkAssignment(t *testing.T, workOrderID kernel.UUID,
	kind assignment.PersonKind, status assignment.WorkStatus) *assignment.Record {
	t.Helper()

	record, err := assignment.RestoreRecord(
		kernel.NewUUID(), workOrderID, kernel.NewUUID(),
		kind, assignment.Work,
		status, assignment.QuoteUnknown,
		1, "replace filter", "", "", nil, nil, false, nil)
	require.NoError(t, err)
	return record
}

func testQuoteAssignment(t *testing.T, workOrderID kernel.UUID,
	status assignment.QuoteStatus) *assignment.Record {
	t.Helper()

	record, err := assignment.RestoreRecord(
		kernel.NewUUID(), workOrderID, kernel.NewUUID(),
		assignment.Vendor, assignment.Quote,
		assignment.WorkUnknown, status,
		1, "quote for compressor", "", "", nil, nil, false, nil)
	require.NoError(t, err)
	return record
}
