package assignment_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot(t *testing.T) assignment.OrderSnapshot {
	t.Helper()
	snapshot, err := assignment.NewOrderSnapshot("Jane Doe", "+491701234567", "1 Main St", 250.50, 3)
	require.NoError(t, err)
	return snapshot
}

func newTestAssignment(t *testing.T) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		validSnapshot(t), assignment.PriorityNormal,
	)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("creates_assignment_in_assigned_status", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.Assigned, a.Status())
		assert.Nil(t, a.DeliveredAt())
		assert.Nil(t, a.CancelledAt())
		assert.Nil(t, a.PhotoURL())
		assert.Nil(t, a.Location())
	})

	t.Run("rejects_zero_identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := assignment.NewAssignment(
			zero, kernel.NewUUID(), kernel.NewUUID(), validSnapshot(t), assignment.PriorityNormal)
		require.Error(t, err)

		_, err = assignment.NewAssignment(
			kernel.NewUUID(), zero, kernel.NewUUID(), validSnapshot(t), assignment.PriorityNormal)
		require.Error(t, err)

		_, err = assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), zero, validSnapshot(t), assignment.PriorityNormal)
		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_snapshot", func(t *testing.T) {
		var snapshot assignment.OrderSnapshot

		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), snapshot, assignment.PriorityNormal)

		require.Error(t, err)
		require.ErrorIs(t, err, assignment.ErrOrderSnapshotIsNotConstructed)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var a assignment.Assignment

		require.ErrorIs(t, a.Validate(), assignment.ErrAssignmentIsNotConstructed)
	})
}

func TestOrderSnapshot(t *testing.T) {
	t.Run("zero_total_amount_is_legitimate", func(t *testing.T) {
		snapshot, err := assignment.NewOrderSnapshot("", "", "", 0, 0)

		require.NoError(t, err)
		assert.Zero(t, snapshot.TotalAmount())
		assert.Zero(t, snapshot.ItemsCount())
	})

	t.Run("negative_values_rejected", func(t *testing.T) {
		_, err := assignment.NewOrderSnapshot("", "", "", -1, 0)
		require.Error(t, err)

		_, err = assignment.NewOrderSnapshot("", "", "", 0, -1)
		require.Error(t, err)
	})
}

func TestAssignment_TransitionTo(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	t.Run("records_photo_and_location_on_non_terminal_status", func(t *testing.T) {
		a := newTestAssignment(t)
		photo := "https://cdn.example.com/proof/abc.jpg"
		point, err := kernel.NewGeoPoint(48.137, 11.575)
		require.NoError(t, err)

		require.NoError(t, a.TransitionTo(assignment.PickedUp, &photo, &point, now))

		assert.Equal(t, assignment.PickedUp, a.Status())
		require.NotNil(t, a.PhotoURL())
		assert.Equal(t, photo, *a.PhotoURL())
		require.NotNil(t, a.Location())
		assert.True(t, point.IsEqual(*a.Location()))
	})

	t.Run("delivered_stamps_delivered_at", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.TransitionTo(assignment.Delivered, nil, nil, now))

		assert.Equal(t, assignment.Delivered, a.Status())
		require.NotNil(t, a.DeliveredAt())
		assert.Equal(t, now, *a.DeliveredAt())
	})

	t.Run("cancelled_stamps_cancelled_at", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.TransitionTo(assignment.Cancelled, nil, nil, now))

		assert.Equal(t, assignment.Cancelled, a.Status())
		require.NotNil(t, a.CancelledAt())
		assert.Equal(t, now, *a.CancelledAt())
	})

	t.Run("second_delivered_transition_is_rejected", func(t *testing.T) {
		a := newTestAssignment(t)

		require.NoError(t, a.TransitionTo(assignment.Delivered, nil, nil, now))
		err := a.TransitionTo(assignment.Delivered, nil, nil, now.Add(time.Minute))

		require.Error(t, err)
		// the first timestamp is preserved
		assert.Equal(t, now, *a.DeliveredAt())
	})

	t.Run("invalid_location_rejected_before_mutation", func(t *testing.T) {
		a := newTestAssignment(t)
		var point kernel.GeoPoint // zero value, not constructed

		err := a.TransitionTo(assignment.PickedUp, nil, &point, now)

		require.Error(t, err)
		assert.Equal(t, assignment.Assigned, a.Status())
	})
}

func TestAssignment_Reassign(t *testing.T) {
	t.Run("updates_courier_and_resets_status", func(t *testing.T) {
		a := newTestAssignment(t)
		now := time.Now()
		require.NoError(t, a.TransitionTo(assignment.InTransit, nil, nil, now))

		newCourier := kernel.NewUUID()
		require.NoError(t, a.Reassign(newCourier))

		assert.True(t, newCourier.IsEqual(a.CourierID()))
		assert.Equal(t, assignment.Assigned, a.Status())
		assert.Nil(t, a.DeliveredAt())
		assert.Nil(t, a.CancelledAt())
	})

	t.Run("rejects_zero_courier", func(t *testing.T) {
		a := newTestAssignment(t)
		var zero kernel.UUID

		require.Error(t, a.Reassign(zero))
	})
}

func TestHistoryEntry(t *testing.T) {
	now := time.Now()

	t.Run("reassignment_entry", func(t *testing.T) {
		oldCourier := kernel.NewUUID()
		newCourier := kernel.NewUUID()

		entry, err := assignment.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), &oldCourier, newCourier, "courier unavailable", now)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		require.NotNil(t, entry.OldCourierID())
		assert.True(t, oldCourier.IsEqual(*entry.OldCourierID()))
		assert.True(t, newCourier.IsEqual(entry.NewCourierID()))
		assert.Equal(t, "courier unavailable", entry.Reason())
	})

	t.Run("initial_assignment_entry_has_no_old_courier", func(t *testing.T) {
		entry, err := assignment.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(),
			assignment.InitialAssignmentReason, now)

		require.NoError(t, err)
		assert.Nil(t, entry.OldCourierID())
	})

	t.Run("zero_new_courier_rejected", func(t *testing.T) {
		var zero kernel.UUID

		_, err := assignment.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), nil, zero, "x", now)

		require.Error(t, err)
	})
}
