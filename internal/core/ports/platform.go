package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// OrderSummary is the slice of a platform order the dispatch context needs
// when the caller does not supply snapshot fields itself.
type OrderSummary struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	TotalAmount     float64
	ItemsCount      int
}

// OrderCatalog reads order data owned by the wider platform. Dispatch never
// writes through this port.
type OrderCatalog interface {
	// GetOrderSummary retrieves the snapshot fields for an order.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	GetOrderSummary(ctx context.Context, orderID kernel.UUID) (OrderSummary, error)
}

// CourierInfo identifies a courier account on the wider platform.
type CourierInfo struct {
	ID   kernel.UUID
	Name string
}

// CourierRegistry reads courier accounts owned by the wider platform.
type CourierRegistry interface {
	// GetActiveCourier retrieves a courier that exists and is active.
	// Returns errs.ObjectNotFoundError otherwise.
	GetActiveCourier(ctx context.Context, id kernel.UUID) (CourierInfo, error)

	// ListActiveCouriers retrieves every active courier.
	ListActiveCouriers(ctx context.Context) ([]CourierInfo, error)
}
