package wallet

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrReconciliationTaskIsNotConstructed is returned when a ReconciliationTask
// was not created through a constructor.
var ErrReconciliationTaskIsNotConstructed = errors.New(
	"ReconciliationTask must be created via NewReconciliationTask or RestoreReconciliationTask constructor")

// ReconciliationTask is an outbox entry for an earning credit that failed
// after its delivery was already committed. A background job replays pending
// tasks until the credit lands or an operator intervenes.
type ReconciliationTask struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	attempts  int
	lastError string
	createdAt time.Time

	isConstructed bool
}

// NewReconciliationTask enqueues a fresh task for the given delivered order.
func NewReconciliationTask(orderID, courierID kernel.UUID, lastError string, now time.Time) (*ReconciliationTask, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &ReconciliationTask{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		courierID:     courierID,
		lastError:     lastError,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreReconciliationTask reconstructs a task from persistence.
func RestoreReconciliationTask(
	id, orderID, courierID kernel.UUID,
	attempts int,
	lastError string,
	createdAt time.Time,
) (*ReconciliationTask, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &ReconciliationTask{
		id:            id,
		orderID:       orderID,
		courierID:     courierID,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the task was created through a constructor.
func (t *ReconciliationTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrReconciliationTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *ReconciliationTask) ID() kernel.UUID {
	return t.id
}

// OrderID returns the delivered order awaiting its earning credit.
func (t *ReconciliationTask) OrderID() kernel.UUID {
	return t.orderID
}

// CourierID returns the courier owed the earning.
func (t *ReconciliationTask) CourierID() kernel.UUID {
	return t.courierID
}

// Attempts returns how many replays have been tried so far.
func (t *ReconciliationTask) Attempts() int {
	return t.attempts
}

// LastError returns the message recorded on the most recent failure.
func (t *ReconciliationTask) LastError() string {
	return t.lastError
}

// CreatedAt returns when the task was enqueued.
func (t *ReconciliationTask) CreatedAt() time.Time {
	return t.createdAt
}

// RecordFailure increments the attempt counter and stores the failure message.
func (t *ReconciliationTask) RecordFailure(message string) {
	t.attempts++
	t.lastError = message
}
