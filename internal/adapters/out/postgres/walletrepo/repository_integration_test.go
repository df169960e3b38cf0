package walletrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/walletrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type WalletRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *walletrepo.GormWalletRepository
	outbox     *walletrepo.GormReconciliationRepository
	tracker    *MockAggregateTracker
}

func (suite *WalletRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&walletrepo.TransactionDTO{},
		&walletrepo.TargetTierDTO{},
		&walletrepo.ReconciliationTaskDTO{},
	))
}

func (suite *WalletRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE delivery_wallet_transactions, delivery_target_tiers, delivery_earning_reconciliation").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = walletrepo.NewGormWalletRepository(suite.db, suite.tracker)
	suite.outbox = walletrepo.NewGormReconciliationRepository(suite.db, suite.tracker)
}

func (suite *WalletRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WalletRepositoryIntegrationTestSuite) newEarning(
	courierID, orderID kernel.UUID,
) *wallet.Transaction {
	return suite.newEarningAt(courierID, orderID, time.Now().UTC())
}

func (suite *WalletRepositoryIntegrationTestSuite) newEarningAt(
	courierID, orderID kernel.UUID,
	createdAt time.Time,
) *wallet.Transaction {
	meta := wallet.EarningMeta{BaseFee: 20, PercentFee: 12.5, Percentage: 0.05, OrderTotal: 250}
	tx, err := wallet.NewEarningTransaction(
		kernel.NewUUID(), courierID, orderID, 32.5, meta, createdAt)
	suite.Require().NoError(err)
	return tx
}

func (suite *WalletRepositoryIntegrationTestSuite) newBonus(
	courierID kernel.UUID,
	date string,
) *wallet.Transaction {
	meta := wallet.BonusMeta{
		BonusType:      wallet.BonusTypeTarget,
		TierName:       "Silver",
		MinOrders:      5,
		CompletedCount: 6,
		Date:           date,
		Amount:         50,
	}
	tx, err := wallet.NewTargetBonusTransaction(kernel.NewUUID(), courierID, 50, meta, time.Now().UTC())
	suite.Require().NoError(err)
	return tx
}

func (suite *WalletRepositoryIntegrationTestSuite) TestAdd_EarningRoundTrip() {
	ctx := context.Background()
	courierID, orderID := kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newEarning(courierID, orderID)))

	var dto walletrepo.TransactionDTO
	suite.Require().NoError(suite.db.First(&dto, "order_id = ?", orderID.Bytes()).Error)
	suite.Equal("earning", dto.Type)
	suite.InDelta(32.5, dto.Amount, 0.001)
	suite.JSONEq(
		`{"baseFee":20,"percentFee":12.5,"percentage":0.05,"distanceIncentive":0,"orderTotal":250}`,
		string(dto.Meta))
}

func (suite *WalletRepositoryIntegrationTestSuite) TestAdd_SecondEarningForOrder_Conflict() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newEarning(kernel.NewUUID(), orderID)))

	err := suite.repository.Add(ctx, suite.newEarning(kernel.NewUUID(), orderID))
	suite.Require().ErrorIs(err, errs.ErrConflict)

	var count int64
	suite.Require().NoError(suite.db.Model(&walletrepo.TransactionDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WalletRepositoryIntegrationTestSuite) TestAdd_SecondBonusSameDay_Conflict() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newBonus(courierID, "2026-09-01")))

	err := suite.repository.Add(ctx, suite.newBonus(courierID, "2026-09-01"))
	suite.Require().ErrorIs(err, errs.ErrConflict)

	// a different day credits fine
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBonus(courierID, "2026-09-02")))

	// so does another courier on the same day
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBonus(kernel.NewUUID(), "2026-09-01")))
}

func (suite *WalletRepositoryIntegrationTestSuite) TestAdd_ConcurrentEarningsForOrder_ExactlyOneLands() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	const writers = 10
	results := make(chan error, writers)

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repository.Add(ctx, suite.newEarning(kernel.NewUUID(), orderID))
		}()
	}
	wg.Wait()
	close(results)

	landed, conflicted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			landed++
		case errors.Is(err, errs.ErrConflict):
			conflicted++
		default:
			suite.Require().NoError(err)
		}
	}
	suite.Equal(1, landed)
	suite.Equal(writers-1, conflicted)

	var count int64
	suite.Require().NoError(suite.db.Model(&walletrepo.TransactionDTO{}).
		Where("order_id = ?", orderID.Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WalletRepositoryIntegrationTestSuite) TestCountEarningsOnDate_CountsOnlyThatCourierAndDay() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// two earnings on the day, one the day before, one for someone else
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newEarningAt(courierID, kernel.NewUUID(), day.Add(9*time.Hour))))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newEarningAt(courierID, kernel.NewUUID(), day.Add(21*time.Hour))))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newEarningAt(courierID, kernel.NewUUID(), day.AddDate(0, 0, -1).Add(12*time.Hour))))
	suite.Require().NoError(suite.repository.Add(ctx,
		suite.newEarningAt(kernel.NewUUID(), kernel.NewUUID(), day.Add(12*time.Hour))))

	// a bonus on the same day is not an earning
	suite.Require().NoError(suite.repository.Add(ctx, suite.newBonus(courierID, "2026-09-01")))

	count, err := suite.repository.CountEarningsOnDate(ctx, courierID, day)
	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *WalletRepositoryIntegrationTestSuite) TestGetActiveTiers_FiltersInactive() {
	ctx := context.Background()

	maxOrders := 9
	suite.seedTier("Silver", 5, &maxOrders, 50, true)
	suite.seedTier("Gold", 10, nil, 120, true)
	suite.seedTier("Legacy", 3, nil, 10, false)

	tiers, err := suite.repository.GetActiveTiers(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(tiers, 2)
	suite.Equal("Silver", tiers[0].Name())
	suite.Equal("Gold", tiers[1].Name())
}

func (suite *WalletRepositoryIntegrationTestSuite) seedTier(
	name string, minOrders int, maxOrders *int, amount float64, active bool,
) {
	dto := walletrepo.TargetTierDTO{
		ID:          kernel.NewUUID().Bytes(),
		Name:        name,
		MinOrders:   minOrders,
		MaxOrders:   maxOrders,
		BonusAmount: amount,
		IsActive:    active,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *WalletRepositoryIntegrationTestSuite) TestReconciliation_EnqueueDrainLifecycle() {
	ctx := context.Background()

	first, err := wallet.NewReconciliationTask(
		kernel.NewUUID(), kernel.NewUUID(), "wallet unavailable", time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(err)
	second, err := wallet.NewReconciliationTask(
		kernel.NewUUID(), kernel.NewUUID(), "wallet unavailable", time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.outbox.Enqueue(ctx, first))
	suite.Require().NoError(suite.outbox.Enqueue(ctx, second))

	pending, err := suite.outbox.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].OrderID().IsEqual(first.OrderID()))

	// retry fails once, then succeeds
	pending[0].RecordFailure("still unavailable")
	suite.Require().NoError(suite.outbox.RecordFailure(ctx, pending[0]))

	reloaded, err := suite.outbox.GetPending(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(reloaded, 1)
	suite.Equal(1, reloaded[0].Attempts())
	suite.Equal("still unavailable", reloaded[0].LastError())

	suite.Require().NoError(suite.outbox.Complete(ctx, reloaded[0]))

	remaining, err := suite.outbox.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(remaining, 1)
	suite.True(remaining[0].OrderID().IsEqual(second.OrderID()))
}

func (suite *WalletRepositoryIntegrationTestSuite) TestReconciliation_EnqueueSameOrderTwice_NoDuplicate() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	first, err := wallet.NewReconciliationTask(orderID, kernel.NewUUID(), "boom", time.Now().UTC())
	suite.Require().NoError(err)
	second, err := wallet.NewReconciliationTask(orderID, kernel.NewUUID(), "boom again", time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.outbox.Enqueue(ctx, first))
	suite.Require().NoError(suite.outbox.Enqueue(ctx, second))

	pending, err := suite.outbox.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func TestWalletRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WalletRepositoryIntegrationTestSuite))
}
