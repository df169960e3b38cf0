package http

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createSlotRequest struct {
	Name              string `json:"name"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DefaultMaxOrders  int    `json:"defaultMaxOrders"`
	DisplayOrderLimit int    `json:"displayOrderLimit"`
	HighThreshold     int    `json:"highThreshold"`
	MediumThreshold   int    `json:"mediumThreshold"`
}

type updateSlotRequest struct {
	Name              string `json:"name"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DefaultMaxOrders  int    `json:"defaultMaxOrders"`
	DisplayOrderLimit int    `json:"displayOrderLimit"`
	HighThreshold     int    `json:"highThreshold"`
	MediumThreshold   int    `json:"mediumThreshold"`
	IsActive          bool   `json:"isActive"`
}

type slotResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DefaultMaxOrders  int    `json:"defaultMaxOrders"`
	DisplayOrderLimit int    `json:"displayOrderLimit"`
	HighThreshold     int    `json:"highThreshold"`
	MediumThreshold   int    `json:"mediumThreshold"`
	IsActive          bool   `json:"isActive"`
}

type createSlotResponse struct {
	ID string `json:"id"`
}

type setAvailabilityRequest struct {
	SlotID          string `json:"slotId"`
	Date            string `json:"date"`
	MaxOrders       *int   `json:"maxOrders"`
	AvailableOrders *int   `json:"availableOrders"`
	IsAvailable     *bool  `json:"isAvailable"`
}

type decrementCapacityRequest struct {
	SlotID   string `json:"slotId"`
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type decrementCapacityResponse struct {
	Previous  int `json:"previous"`
	Remaining int `json:"remaining"`
}

type slotAvailabilityResponse struct {
	SlotID          string `json:"slotId"`
	SlotName        string `json:"slotName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Date            string `json:"date"`
	AvailableOrders int    `json:"availableOrders"`
	MaxOrders       int    `json:"maxOrders"`
	Level           string `json:"availabilityLevel"`
	IsAvailable     bool   `json:"isAvailable"`
}

type assignOrderRequest struct {
	OrderID         string   `json:"orderId"`
	CourierID       string   `json:"courierId"`
	Priority        string   `json:"priority"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
	DeliveryAddress string   `json:"deliveryAddress"`
	TotalAmount     *float64 `json:"totalAmount"`
	ItemsCount      *int     `json:"itemsCount"`
}

type assignOrderResponse struct {
	AssignmentID string `json:"assignmentId"`
	Updated      bool   `json:"updated"`
}

type bulkAssignRequest struct {
	OrderIDs  []string `json:"orderIds"`
	CourierID string   `json:"courierId"`
	Priority  string   `json:"priority"`
}

type bulkAssignFailure struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type bulkAssignResponse struct {
	Assigned []string            `json:"assigned"`
	Updated  []string            `json:"updated"`
	Failed   []bulkAssignFailure `json:"failed"`
}

type reassignOrderRequest struct {
	NewCourierID string `json:"newCourierId"`
	Reason       string `json:"reason"`
}

type updateStatusRequest struct {
	Status    string   `json:"status"`
	PhotoURL  *string  `json:"photoUrl"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type courierWorkloadResponse struct {
	CourierID   string `json:"courierId"`
	Name        string `json:"name"`
	TotalOrders int    `json:"totalOrders"`
	Assigned    int    `json:"assigned"`
	PickedUp    int    `json:"pickedUp"`
	InTransit   int    `json:"inTransit"`
	Delivered   int    `json:"delivered"`
	ActiveTotal int    `json:"activeTotal"`
}

type assignmentHistoryResponse struct {
	ID           *string `json:"id"`
	OrderID      string  `json:"orderId"`
	OldCourierID *string `json:"oldCourierId"`
	NewCourierID string  `json:"newCourierId"`
	Reason       string  `json:"reason"`
	CreatedAt    string  `json:"createdAt"`
}
