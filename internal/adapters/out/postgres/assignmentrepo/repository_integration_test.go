package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
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

type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
	tracker    *MockAggregateTracker
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}, &assignmentrepo.HistoryDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE delivery_assignments, delivery_assignment_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db, suite.tracker)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) newAssignment(
	orderID, courierID kernel.UUID,
) *assignment.Assignment {
	snapshot, err := assignment.NewOrderSnapshot("Dana", "+15550001122", "12 Harbor Lane", 250, 3)
	suite.Require().NoError(err)

	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, courierID, snapshot, assignment.PriorityHigh)
	suite.Require().NoError(err)
	return a
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddAndGetByOrderID_RoundTrip() {
	ctx := context.Background()
	orderID, courierID := kernel.NewUUID(), kernel.NewUUID()
	created := suite.newAssignment(orderID, courierID)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.CourierID().IsEqual(courierID))
	suite.Equal(assignment.Assigned, loaded.Status())
	suite.Equal(assignment.PriorityHigh, loaded.Priority())
	suite.Equal("Dana", loaded.Snapshot().CustomerName())
	suite.InDelta(250, loaded.Snapshot().TotalAmount(), 0.001)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_DuplicateOrder_Conflict() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newAssignment(orderID, kernel.NewUUID())))

	err := suite.repository.Add(ctx, suite.newAssignment(orderID, kernel.NewUUID()))
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndProof() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	created := suite.newAssignment(orderID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, created))

	photo := "https://cdn.example.com/proof/1.jpg"
	point, err := kernel.NewGeoPoint(52.52, 13.405)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(created.TransitionTo(assignment.InTransit, &photo, &point, now))
	suite.Require().NoError(suite.repository.Update(ctx, created))
	suite.Require().NoError(created.TransitionTo(assignment.Delivered, nil, nil, now))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(assignment.Delivered, loaded.Status())
	suite.Require().NotNil(loaded.PhotoURL())
	suite.Equal(photo, *loaded.PhotoURL())
	suite.Require().NotNil(loaded.Location())
	suite.InDelta(52.52, loaded.Location().Latitude(), 0.000001)
	suite.Require().NotNil(loaded.DeliveredAt())
	suite.WithinDuration(now, *loaded.DeliveredAt(), time.Second)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_ReassignClearsDeliveryStamps() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	created := suite.newAssignment(orderID, kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, created))

	suite.Require().NoError(created.TransitionTo(assignment.Delivered, nil, nil, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	newCourier := kernel.NewUUID()
	suite.Require().NoError(created.Reassign(newCourier))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.CourierID().IsEqual(newCourier))
	suite.Equal(assignment.Assigned, loaded.Status())
	suite.Nil(loaded.DeliveredAt())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetByOrderID_Unknown_NotFound() {
	_, err := suite.repository.GetByOrderID(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddHistory_PersistsTrail() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	oldCourier := kernel.NewUUID()
	newCourier := kernel.NewUUID()

	entry, err := assignment.NewHistoryEntry(
		kernel.NewUUID(), orderID, &oldCourier, newCourier, "Courier vehicle breakdown", time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.AddHistory(ctx, entry))

	var count int64
	suite.Require().NoError(
		suite.db.Model(&assignmentrepo.HistoryDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
