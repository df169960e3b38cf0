// Package platform provides read-only adapters over tables owned by the
// wider e-commerce platform. Dispatch consumes orders and courier accounts
// from here but never writes; the platform's own services own those tables.
package platform

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderCatalog implements OrderCatalog over the platform's orders and
// order_items tables.
type GormOrderCatalog struct {
	db *gorm.DB
}

// NewGormOrderCatalog creates a read-only order catalog adapter.
func NewGormOrderCatalog(db *gorm.DB) *GormOrderCatalog {
	return &GormOrderCatalog{db: db}
}

// GetOrderSummary retrieves the snapshot fields for an order.
func (c *GormOrderCatalog) GetOrderSummary(
	ctx context.Context,
	orderID kernel.UUID,
) (ports.OrderSummary, error) {
	if err := orderID.Validate(); err != nil {
		return ports.OrderSummary{}, err
	}

	row := c.db.WithContext(ctx).Raw(`
		SELECT
			o.customer_name,
			o.customer_phone,
			o.delivery_address,
			o.total_amount,
			COALESCE(SUM(i.quantity), 0)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.id = ?
		GROUP BY o.id
	`, orderID.Bytes()).Row()

	var summary ports.OrderSummary
	err := row.Scan(
		&summary.CustomerName,
		&summary.CustomerPhone,
		&summary.DeliveryAddress,
		&summary.TotalAmount,
		&summary.ItemsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.OrderSummary{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return ports.OrderSummary{}, err
	}

	return summary, nil
}
