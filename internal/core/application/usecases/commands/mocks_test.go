package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSlotRepository struct{ mock.Mock }

func (m *MockSlotRepository) Add(ctx context.Context, s *slot.DeliverySlot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotRepository) Update(ctx context.Context, s *slot.DeliverySlot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.DeliverySlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slot.DeliverySlot), args.Error(1)
}

func (m *MockSlotRepository) GetAvailability(
	ctx context.Context, slotID kernel.UUID, date time.Time,
) (slot.Availability, error) {
	args := m.Called(ctx, slotID, date)
	return args.Get(0).(slot.Availability), args.Error(1)
}

func (m *MockSlotRepository) SaveAvailability(ctx context.Context, availability slot.Availability) error {
	args := m.Called(ctx, availability)
	return args.Error(0)
}

func (m *MockSlotRepository) EnsureAvailability(
	ctx context.Context, s *slot.DeliverySlot, date time.Time,
) error {
	args := m.Called(ctx, s, date)
	return args.Error(0)
}

func (m *MockSlotRepository) DecrementAvailability(
	ctx context.Context, slotID kernel.UUID, date time.Time, quantity int,
) (ports.DecrementResult, error) {
	args := m.Called(ctx, slotID, date, quantity)
	return args.Get(0).(ports.DecrementResult), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) AddHistory(ctx context.Context, entry *assignment.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, tx *wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) CountEarningsOnDate(
	ctx context.Context, courierID kernel.UUID, date time.Time,
) (int, error) {
	args := m.Called(ctx, courierID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockWalletRepository) GetActiveTiers(ctx context.Context) ([]*wallet.TargetTier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.TargetTier), args.Error(1)
}

type MockReconciliationRepository struct{ mock.Mock }

func (m *MockReconciliationRepository) Enqueue(ctx context.Context, task *wallet.ReconciliationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReconciliationRepository) GetPending(
	ctx context.Context, limit int,
) ([]*wallet.ReconciliationTask, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.ReconciliationTask), args.Error(1)
}

func (m *MockReconciliationRepository) Complete(ctx context.Context, task *wallet.ReconciliationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReconciliationRepository) RecordFailure(ctx context.Context, task *wallet.ReconciliationTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit-of-work interface in this package.
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

func (m *MockUoW) SlotRepository() ports.SlotRepository {
	args := m.Called()
	return args.Get(0).(ports.SlotRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) ReconciliationRepository() ports.ReconciliationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReconciliationRepository)
}

type MockSlotUoWFactory struct{ mock.Mock }

func (m *MockSlotUoWFactory) Create() commands.SlotUoW {
	args := m.Called()
	return args.Get(0).(commands.SlotUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}

type MockReconciliationUoWFactory struct{ mock.Mock }

func (m *MockReconciliationUoWFactory) Create() commands.ReconciliationUoW {
	args := m.Called()
	return args.Get(0).(commands.ReconciliationUoW)
}

type MockOrderCatalog struct{ mock.Mock }

func (m *MockOrderCatalog) GetOrderSummary(
	ctx context.Context, orderID kernel.UUID,
) (ports.OrderSummary, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.OrderSummary), args.Error(1)
}

type MockCourierRegistry struct{ mock.Mock }

func (m *MockCourierRegistry) GetActiveCourier(
	ctx context.Context, id kernel.UUID,
) (ports.CourierInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CourierInfo), args.Error(1)
}

func (m *MockCourierRegistry) ListActiveCouriers(ctx context.Context) ([]ports.CourierInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CourierInfo), args.Error(1)
}

type MockEarningCreditor struct{ mock.Mock }

func (m *MockEarningCreditor) Handle(ctx context.Context, cmd commands.CreditEarningCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
