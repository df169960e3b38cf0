package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

type MockSlotUoW struct{ mock.Mock }

func (m *MockSlotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSlotUoW) SlotRepository() ports.SlotRepository {
	args := m.Called()
	return args.Get(0).(ports.SlotRepository)
}

type MockSlotUoWFactory struct{ mock.Mock }

func (m *MockSlotUoWFactory) Create() commands.SlotUoW {
	args := m.Called()
	return args.Get(0).(commands.SlotUoW)
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

type MockOrderAssigner struct{ mock.Mock }

func (m *MockOrderAssigner) Handle(
	ctx context.Context, cmd commands.AssignOrderCommand,
) (commands.AssignOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AssignOrderResult), args.Error(1)
}

type MockOrderCatalog struct{ mock.Mock }

func (m *MockOrderCatalog) GetOrderSummary(
	ctx context.Context, orderID kernel.UUID,
) (ports.OrderSummary, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.OrderSummary), args.Error(1)
}

// newSlotUoW wires a unit of work whose transaction lifecycle always
// succeeds and that hands out the given repository.
func newSlotUoW(repo *MockSlotRepository) (*MockSlotUoWFactory, *MockSlotUoW) {
	uow := &MockSlotUoW{}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("SlotRepository").Return(repo)

	factory := &MockSlotUoWFactory{}
	factory.On("Create").Return(uow)

	return factory, uow
}

// serverWithSlotCommands builds a server whose slot-side command handlers
// run against the given unit-of-work factory. Endpoints not under test keep
// zero-value handlers; their requests fail validation before any handler runs.
func serverWithSlotCommands(factory *MockSlotUoWFactory) *httpadapter.Server {
	return httpadapter.NewServer(
		commands.NewCreateSlotCommandHandler(factory),
		commands.NewUpdateSlotCommandHandler(factory),
		commands.NewSetSlotAvailabilityCommandHandler(factory),
		commands.NewDecrementSlotCapacityCommandHandler(factory),
		commands.AssignOrderCommandHandler{},
		commands.BulkAssignOrdersCommandHandler{},
		commands.ReassignOrderCommandHandler{},
		commands.UpdateDeliveryStatusCommandHandler{},
		queries.GetSlotsQueryHandler{},
		queries.GetSlotAvailabilityQueryHandler{},
		queries.GetCourierWorkloadQueryHandler{},
		queries.GetAssignmentHistoryQueryHandler{},
	)
}

func performRequest(
	t *testing.T, server *httpadapter.Server, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSlot_Created(t *testing.T) {
	repo := &MockSlotRepository{}
	repo.On("Add", mock.Anything, mock.Anything).Return(nil)
	factory, uow := newSlotUoW(repo)

	server := serverWithSlotCommands(factory)

	rec := performRequest(t, server, http.MethodPost, "/api/v1/delivery/slots", `{
		"name": "Morning",
		"startTime": "10:00",
		"endTime": "12:00",
		"defaultMaxOrders": 50,
		"displayOrderLimit": 40,
		"highThreshold": 60,
		"mediumThreshold": 85
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id"`)
	repo.AssertCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestCreateSlot_InvalidWindowIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPost, "/api/v1/delivery/slots", `{
		"name": "Backwards",
		"startTime": "12:00",
		"endTime": "10:00",
		"defaultMaxOrders": 50,
		"displayOrderLimit": 40,
		"highThreshold": 60,
		"mediumThreshold": 85
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSlot_MalformedSlotIDIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPut, "/api/v1/delivery/slots/not-a-uuid", `{
		"name": "Morning",
		"startTime": "10:00",
		"endTime": "12:00",
		"defaultMaxOrders": 50,
		"displayOrderLimit": 40,
		"highThreshold": 60,
		"mediumThreshold": 85,
		"isActive": true
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSlot_UnknownSlotIsNotFound(t *testing.T) {
	repo := &MockSlotRepository{}
	repo.On("Get", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("slotID", kernel.NewUUID()))
	factory, _ := newSlotUoW(repo)

	server := serverWithSlotCommands(factory)

	rec := performRequest(t, server, http.MethodPut,
		"/api/v1/delivery/slots/"+kernel.NewUUID().String(), `{
		"name": "Morning",
		"startTime": "10:00",
		"endTime": "12:00",
		"defaultMaxOrders": 50,
		"displayOrderLimit": 40,
		"highThreshold": 60,
		"mediumThreshold": 85,
		"isActive": true
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetSlotAvailability_NoOverrideFieldsIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPut, "/api/v1/delivery/slots/availability", `{
		"slotId": "`+kernel.NewUUID().String()+`",
		"date": "2026-09-01"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecrementSlotCapacity_ReturnsCounters(t *testing.T) {
	slotID := kernel.NewUUID()
	start, err := slot.NewTimeOfDay(10, 0)
	require.NoError(t, err)
	end, err := slot.NewTimeOfDay(12, 0)
	require.NoError(t, err)
	aggregate, err := slot.NewDeliverySlot(slotID, "Morning", start, end, 50, 40, 60, 85)
	require.NoError(t, err)

	repo := &MockSlotRepository{}
	repo.On("Get", mock.Anything, mock.Anything).Return(aggregate, nil)
	repo.On("EnsureAvailability", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("DecrementAvailability", mock.Anything, mock.Anything, mock.Anything, 2).
		Return(ports.DecrementResult{Previous: 40, Remaining: 38}, nil)
	factory, _ := newSlotUoW(repo)

	server := serverWithSlotCommands(factory)

	rec := performRequest(t, server, http.MethodPost,
		"/api/v1/delivery/slots/availability/decrement", `{
		"slotId": "`+slotID.String()+`",
		"date": "2026-09-01",
		"quantity": 2
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"previous": 40, "remaining": 38}`, rec.Body.String())
}

func TestDecrementSlotCapacity_ZeroQuantityIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPost,
		"/api/v1/delivery/slots/availability/decrement", `{
		"slotId": "`+kernel.NewUUID().String()+`",
		"date": "2026-09-01",
		"quantity": 0
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignOrder_UnknownCourierIsNotFound(t *testing.T) {
	courierID := kernel.NewUUID()

	registry := &MockCourierRegistry{}
	registry.On("GetActiveCourier", mock.Anything, mock.Anything).
		Return(ports.CourierInfo{}, errs.NewObjectNotFoundError("courierID", courierID))

	assignHandler := commands.NewAssignOrderCommandHandler(nil, &MockOrderCatalog{}, registry, nil)

	server := httpadapter.NewServer(
		commands.CreateSlotCommandHandler{},
		commands.UpdateSlotCommandHandler{},
		commands.SetSlotAvailabilityCommandHandler{},
		commands.DecrementSlotCapacityCommandHandler{},
		assignHandler,
		commands.BulkAssignOrdersCommandHandler{},
		commands.ReassignOrderCommandHandler{},
		commands.UpdateDeliveryStatusCommandHandler{},
		queries.GetSlotsQueryHandler{},
		queries.GetSlotAvailabilityQueryHandler{},
		queries.GetCourierWorkloadQueryHandler{},
		queries.GetAssignmentHistoryQueryHandler{},
	)

	rec := performRequest(t, server, http.MethodPost, "/api/v1/delivery/orders", `{
		"orderId": "`+kernel.NewUUID().String()+`",
		"courierId": "`+courierID.String()+`",
		"priority": "high"
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkAssignOrders_EmptyBatchIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPost,
		"/api/v1/delivery/bulk-assign",
		`{"orderIds": [], "courierId": "`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkAssignOrders_ReportsOrderIDsPerBucket(t *testing.T) {
	courierID := kernel.NewUUID()
	fresh := kernel.NewUUID()
	missing := kernel.NewUUID()
	handover := kernel.NewUUID()

	matchOrder := func(orderID kernel.UUID) any {
		return mock.MatchedBy(func(cmd commands.AssignOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID)
		})
	}

	assigner := &MockOrderAssigner{}
	assigner.On("Handle", mock.Anything, matchOrder(fresh)).
		Return(commands.AssignOrderResult{AssignmentID: kernel.NewUUID()}, nil)
	assigner.On("Handle", mock.Anything, matchOrder(missing)).
		Return(commands.AssignOrderResult{}, errs.NewObjectNotFoundError("orderId", missing.String()))
	assigner.On("Handle", mock.Anything, matchOrder(handover)).
		Return(commands.AssignOrderResult{AssignmentID: kernel.NewUUID(), Updated: true}, nil)

	server := httpadapter.NewServer(
		commands.CreateSlotCommandHandler{},
		commands.UpdateSlotCommandHandler{},
		commands.SetSlotAvailabilityCommandHandler{},
		commands.DecrementSlotCapacityCommandHandler{},
		commands.AssignOrderCommandHandler{},
		commands.NewBulkAssignOrdersCommandHandler(assigner),
		commands.ReassignOrderCommandHandler{},
		commands.UpdateDeliveryStatusCommandHandler{},
		queries.GetSlotsQueryHandler{},
		queries.GetSlotAvailabilityQueryHandler{},
		queries.GetCourierWorkloadQueryHandler{},
		queries.GetAssignmentHistoryQueryHandler{},
	)

	rec := performRequest(t, server, http.MethodPost, "/api/v1/delivery/bulk-assign", `{
		"orderIds": ["`+fresh.String()+`", "`+missing.String()+`", "`+handover.String()+`"],
		"courierId": "`+courierID.String()+`",
		"priority": "normal"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Assigned []string `json:"assigned"`
		Updated  []string `json:"updated"`
		Failed   []struct {
			OrderID string `json:"orderId"`
			Reason  string `json:"reason"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, []string{fresh.String()}, response.Assigned)
	assert.Equal(t, []string{handover.String()}, response.Updated)
	require.Len(t, response.Failed, 1)
	assert.Equal(t, missing.String(), response.Failed[0].OrderID)
}

func TestReassignOrder_MissingReasonIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPut,
		"/api/v1/delivery/reassign/"+kernel.NewUUID().String(), `{
		"newCourierId": "`+kernel.NewUUID().String()+`"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDeliveryStatus_UnknownStatusIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodPut,
		"/api/v1/delivery/orders/"+kernel.NewUUID().String()+"/status", `{
		"status": "teleported"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAssignmentHistory_MalformedOrderIDIsBadRequest(t *testing.T) {
	server := serverWithSlotCommands(&MockSlotUoWFactory{})

	rec := performRequest(t, server, http.MethodGet,
		"/api/v1/delivery/assignment-history/nope", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
