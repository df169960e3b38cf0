package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/slot"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// ErrOrderNotDelivered is returned when an earning credit is requested for
// an order whose assignment is not in "delivered" status.
var ErrOrderNotDelivered = errors.New("order is not delivered")

// CreditEarningCommandHandler credits courier wallets for delivered orders.
//
// The earning amount is base fee + percentage of the frozen order total +
// a pluggable distance incentive. After the earning commits, the handler
// evaluates the courier's daily target bonus: the day's credited earnings
// are counted and matched against the active tier table, and the highest
// qualifying tier is credited once per courier per day. Delivered orders
// whose credit is still parked in the reconciliation outbox never count
// toward a tier. Both credits rely on storage unique
// constraints for idempotency, so replays are harmless.
type CreditEarningCommandHandler struct {
	uowFactory WalletUoWFactory
	calculator services.EarningsCalculator
	log        *slog.Logger
}

// NewCreditEarningCommandHandler creates a handler for earning credits.
func NewCreditEarningCommandHandler(
	uowFactory WalletUoWFactory,
	calculator services.EarningsCalculator,
	log *slog.Logger,
) CreditEarningCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return CreditEarningCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		log:        log,
	}
}

// Handle processes the earning credit command.
// An already-credited order is a no-op, not an error. Bonus evaluation runs
// in its own transaction after the earning commits and is best-effort: a
// failed evaluation is logged and retried naturally on the courier's next
// delivery of the day.
func (h CreditEarningCommandHandler) Handle(ctx context.Context, cmd CreditEarningCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.creditEarning(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	h.evaluateTargetBonus(ctx, aggregate)

	return nil
}

func (h CreditEarningCommandHandler) creditEarning(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.AssignmentRepository().GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if aggregate.Status() != assignment.Delivered {
		return nil, ErrOrderNotDelivered
	}

	amount, meta, err := h.calculator.Calculate(aggregate)
	if err != nil {
		return nil, err
	}

	earning, err := wallet.NewEarningTransaction(
		kernel.NewUUID(), aggregate.CourierID(), orderID, amount, meta, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = uow.WalletRepository().Add(ctx, earning)
	if err != nil && !errors.Is(err, errs.ErrConflict) {
		return nil, err
	}
	// conflict means the order was already credited; fall through so the
	// bonus evaluation still runs on replays

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h CreditEarningCommandHandler) evaluateTargetBonus(
	ctx context.Context,
	aggregate *assignment.Assignment,
) {
	courierID := aggregate.CourierID()
	orderID := aggregate.OrderID()

	// the bonus day is the day the earning landed, in UTC, matching the
	// created_at stamp of the credit that just committed
	date := slot.NormalizeDate(time.Now().UTC())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.log.WarnContext(ctx, "target bonus evaluation skipped",
			"orderId", orderID.String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	completedCount, err := uow.WalletRepository().CountEarningsOnDate(ctx, courierID, date)
	if err != nil {
		h.log.WarnContext(ctx, "target bonus count failed",
			"courierId", courierID.String(), "error", err)
		return
	}

	tiers, err := uow.WalletRepository().GetActiveTiers(ctx)
	if err != nil {
		h.log.WarnContext(ctx, "target bonus tiers unavailable",
			"courierId", courierID.String(), "error", err)
		return
	}

	tier := services.SelectTargetTier(tiers, completedCount)
	if tier == nil {
		return
	}

	meta := wallet.BonusMeta{
		BonusType:      wallet.BonusTypeTarget,
		TierID:         tier.ID().String(),
		TierName:       tier.Name(),
		MinOrders:      tier.MinOrders(),
		MaxOrders:      tier.MaxOrders(),
		CompletedCount: completedCount,
		Date:           date.Format("2006-01-02"),
		Amount:         tier.BonusAmount(),
	}

	bonus, err := wallet.NewTargetBonusTransaction(
		kernel.NewUUID(), courierID, tier.BonusAmount(), meta, time.Now().UTC())
	if err != nil {
		h.log.WarnContext(ctx, "target bonus transaction rejected",
			"courierId", courierID.String(), "error", err)
		return
	}

	err = uow.WalletRepository().Add(ctx, bonus)
	if err != nil && !errors.Is(err, errs.ErrConflict) {
		h.log.WarnContext(ctx, "target bonus credit failed",
			"courierId", courierID.String(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.log.WarnContext(ctx, "target bonus commit failed",
			"courierId", courierID.String(), "error", err)
		return
	}

	h.log.InfoContext(ctx, "target bonus credited",
		"courierId", courierID.String(),
		"tier", tier.Name(),
		"completedCount", completedCount,
		"amount", tier.BonusAmount())
}
