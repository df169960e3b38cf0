// Package http exposes the dispatch subsystem over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// parseUUID converts a raw path or body identifier into a kernel UUID,
// classifying malformed input as a validation failure.
func parseUUID(raw, paramName string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}

	return id, nil
}

// Server handles the delivery dispatch HTTP surface.
type Server struct {
	// Command handlers
	createSlotHandler        commands.CreateSlotCommandHandler
	updateSlotHandler        commands.UpdateSlotCommandHandler
	setAvailabilityHandler   commands.SetSlotAvailabilityCommandHandler
	decrementCapacityHandler commands.DecrementSlotCapacityCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	bulkAssignHandler        commands.BulkAssignOrdersCommandHandler
	reassignOrderHandler     commands.ReassignOrderCommandHandler
	updateStatusHandler      commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	getSlotsHandler        queries.GetSlotsQueryHandler
	getAvailabilityHandler queries.GetSlotAvailabilityQueryHandler
	getWorkloadHandler     queries.GetCourierWorkloadQueryHandler
	getHistoryHandler      queries.GetAssignmentHistoryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createSlotHandler commands.CreateSlotCommandHandler,
	updateSlotHandler commands.UpdateSlotCommandHandler,
	setAvailabilityHandler commands.SetSlotAvailabilityCommandHandler,
	decrementCapacityHandler commands.DecrementSlotCapacityCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	bulkAssignHandler commands.BulkAssignOrdersCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getSlotsHandler queries.GetSlotsQueryHandler,
	getAvailabilityHandler queries.GetSlotAvailabilityQueryHandler,
	getWorkloadHandler queries.GetCourierWorkloadQueryHandler,
	getHistoryHandler queries.GetAssignmentHistoryQueryHandler,
) *Server {
	return &Server{
		createSlotHandler:        createSlotHandler,
		updateSlotHandler:        updateSlotHandler,
		setAvailabilityHandler:   setAvailabilityHandler,
		decrementCapacityHandler: decrementCapacityHandler,
		assignOrderHandler:       assignOrderHandler,
		bulkAssignHandler:        bulkAssignHandler,
		reassignOrderHandler:     reassignOrderHandler,
		updateStatusHandler:      updateStatusHandler,
		getSlotsHandler:          getSlotsHandler,
		getAvailabilityHandler:   getAvailabilityHandler,
		getWorkloadHandler:       getWorkloadHandler,
		getHistoryHandler:        getHistoryHandler,
	}
}

// RegisterRoutes mounts every dispatch endpoint under /api/v1/delivery.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/delivery")

	api.GET("/slots", s.GetSlots)
	api.POST("/slots", s.CreateSlot)
	api.PUT("/slots/:slotId", s.UpdateSlot)
	api.GET("/slots/availability", s.GetSlotAvailability)
	api.PUT("/slots/availability", s.SetSlotAvailability)
	api.POST("/slots/availability/decrement", s.DecrementSlotCapacity)

	api.POST("/orders", s.AssignOrder)
	api.POST("/bulk-assign", s.BulkAssignOrders)
	api.PUT("/reassign/:orderId", s.ReassignOrder)
	api.PUT("/orders/:orderId/status", s.UpdateDeliveryStatus)

	api.GET("/workload", s.GetCourierWorkload)
	api.GET("/assignment-history/:orderId", s.GetAssignmentHistory)

	e.GET("/health", s.Health)
}

// GetSlots handles GET /api/v1/delivery/slots - lists every configured slot.
func (s *Server) GetSlots(ctx echo.Context) error {
	slots, err := s.getSlotsHandler.Handle(ctx.Request().Context(), queries.NewGetSlotsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]slotResponse, len(slots))
	for i, item := range slots {
		response[i] = slotResponse{
			ID:                item.ID.String(),
			Name:              item.Name,
			StartTime:         item.StartTime,
			EndTime:           item.EndTime,
			DefaultMaxOrders:  item.DefaultMaxOrders,
			DisplayOrderLimit: item.DisplayOrderLimit,
			HighThreshold:     item.HighThreshold,
			MediumThreshold:   item.MediumThreshold,
			IsActive:          item.IsActive,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateSlot handles POST /api/v1/delivery/slots - registers a delivery slot.
func (s *Server) CreateSlot(ctx echo.Context) error {
	var request createSlotRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateSlotCommand(
		request.Name, request.StartTime, request.EndTime,
		request.DefaultMaxOrders, request.DisplayOrderLimit,
		request.HighThreshold, request.MediumThreshold,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	slotID, err := s.createSlotHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createSlotResponse{ID: slotID.String()})
}

// UpdateSlot handles PUT /api/v1/delivery/slots/:slotId - redefines a slot.
func (s *Server) UpdateSlot(ctx echo.Context) error {
	slotID, err := parseUUID(ctx.Param("slotId"), "slotId")
	if err != nil {
		return respondError(ctx, err)
	}

	var request updateSlotRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateSlotCommand(
		slotID,
		request.Name, request.StartTime, request.EndTime,
		request.DefaultMaxOrders, request.DisplayOrderLimit,
		request.HighThreshold, request.MediumThreshold,
		request.IsActive,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSlotAvailability handles GET /api/v1/delivery/slots/availability -
// returns the checkout availability calendar for a date range.
func (s *Server) GetSlotAvailability(ctx echo.Context) error {
	query, err := queries.NewGetSlotAvailabilityQuery(
		ctx.QueryParam("startDate"), ctx.QueryParam("endDate"))
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]slotAvailabilityResponse, len(rows))
	for i, row := range rows {
		response[i] = slotAvailabilityResponse{
			SlotID:          row.SlotID.String(),
			SlotName:        row.SlotName,
			StartTime:       row.StartTime,
			EndTime:         row.EndTime,
			Date:            row.Date.Format(dateLayout),
			AvailableOrders: row.AvailableOrders,
			MaxOrders:       row.MaxOrders,
			Level:           string(row.Level),
			IsAvailable:     row.IsAvailable,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetSlotAvailability handles PUT /api/v1/delivery/slots/availability -
// applies an operator override to one slot's capacity on one date.
func (s *Server) SetSlotAvailability(ctx echo.Context) error {
	var request setAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	slotID, err := parseUUID(request.SlotID, "slotId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetSlotAvailabilityCommand(
		slotID, request.Date,
		request.MaxOrders, request.AvailableOrders, request.IsAvailable,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DecrementSlotCapacity handles POST /api/v1/delivery/slots/availability/decrement -
// consumes capacity at checkout and reports the counter state around the call.
func (s *Server) DecrementSlotCapacity(ctx echo.Context) error {
	var request decrementCapacityRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	slotID, err := parseUUID(request.SlotID, "slotId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDecrementSlotCapacityCommand(slotID, request.Date, request.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.decrementCapacityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, decrementCapacityResponse{
		Previous:  result.Previous,
		Remaining: result.Remaining,
	})
}

// AssignOrder handles POST /api/v1/delivery/orders - assigns an order to a
// courier, or hands it over when the order already carries an assignment.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var request assignOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	orderID, err := parseUUID(request.OrderID, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	courierID, err := parseUUID(request.CourierID, "courierId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(
		orderID, courierID, request.Priority,
		request.CustomerName, request.CustomerPhone, request.DeliveryAddress,
		request.TotalAmount, request.ItemsCount,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	status := http.StatusCreated
	if result.Updated {
		status = http.StatusOK
	}

	return ctx.JSON(status, assignOrderResponse{
		AssignmentID: result.AssignmentID.String(),
		Updated:      result.Updated,
	})
}

// BulkAssignOrders handles POST /api/v1/delivery/bulk-assign - distributes a
// batch of orders to one courier with per-order isolation.
func (s *Server) BulkAssignOrders(ctx echo.Context) error {
	var request bulkAssignRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	if len(request.OrderIDs) == 0 {
		return respondBadRequest(ctx, "orderIds must not be empty")
	}

	courierID, err := parseUUID(request.CourierID, "courierId")
	if err != nil {
		return respondError(ctx, err)
	}

	response := bulkAssignResponse{
		Assigned: make([]string, 0, len(request.OrderIDs)),
		Updated:  make([]string, 0),
		Failed:   make([]bulkAssignFailure, 0),
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		orderID, idErr := parseUUID(raw, "orderId")
		if idErr != nil {
			response.Failed = append(response.Failed, bulkAssignFailure{OrderID: raw, Reason: idErr.Error()})
			continue
		}
		orderIDs = append(orderIDs, orderID)
	}

	if len(orderIDs) > 0 {
		cmd, cmdErr := commands.NewBulkAssignOrdersCommand(orderIDs, courierID, request.Priority)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}

		result, handleErr := s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd)
		if handleErr != nil {
			return respondError(ctx, handleErr)
		}

		for _, orderID := range result.Assigned {
			response.Assigned = append(response.Assigned, orderID.String())
		}
		for _, orderID := range result.Updated {
			response.Updated = append(response.Updated, orderID.String())
		}
		for _, failure := range result.Failed {
			response.Failed = append(response.Failed, bulkAssignFailure{
				OrderID: failure.OrderID.String(),
				Reason:  failure.Reason,
			})
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReassignOrder handles PUT /api/v1/delivery/reassign/:orderId - hands an
// order over to a different courier with an audited reason.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("orderId"), "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var request reassignOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	newCourierID, err := parseUUID(request.NewCourierID, "newCourierId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, newCourierID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles PUT /api/v1/delivery/orders/:orderId/status -
// moves an order's delivery along its lifecycle.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("orderId"), "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var request updateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		orderID, request.Status, request.PhotoURL, request.Latitude, request.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierWorkload handles GET /api/v1/delivery/workload - reports per
// courier total orders and the breakdown by status, busiest first.
func (s *Server) GetCourierWorkload(ctx echo.Context) error {
	rows, err := s.getWorkloadHandler.Handle(
		ctx.Request().Context(), queries.NewGetCourierWorkloadQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]courierWorkloadResponse, len(rows))
	for i, row := range rows {
		response[i] = courierWorkloadResponse{
			CourierID:   row.CourierID.String(),
			Name:        row.Name,
			TotalOrders: row.TotalOrders,
			Assigned:    row.Assigned,
			PickedUp:    row.PickedUp,
			InTransit:   row.InTransit,
			Delivered:   row.Delivered,
			ActiveTotal: row.ActiveTotal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAssignmentHistory handles GET /api/v1/delivery/assignment-history/:orderId -
// returns the courier trail of an order, newest first.
func (s *Server) GetAssignmentHistory(ctx echo.Context) error {
	orderID, err := parseUUID(ctx.Param("orderId"), "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAssignmentHistoryQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]assignmentHistoryResponse, len(rows))
	for i, row := range rows {
		entry := assignmentHistoryResponse{
			OrderID:      row.OrderID.String(),
			NewCourierID: row.NewCourierID.String(),
			Reason:       row.Reason,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		}
		if row.ID != nil {
			id := row.ID.String()
			entry.ID = &id
		}
		if row.OldCourierID != nil {
			oldID := row.OldCourierID.String()
			entry.OldCourierID = &oldID
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
