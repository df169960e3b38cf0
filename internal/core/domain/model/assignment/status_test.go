package assignment_test

import (
	"testing"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("accepts_the_five_defined_statuses", func(t *testing.T) {
		cases := map[string]assignment.Status{
			"assigned":   assignment.Assigned,
			"picked_up":  assignment.PickedUp,
			"in_transit": assignment.InTransit,
			"delivered":  assignment.Delivered,
			"cancelled":  assignment.Cancelled,
		}

		for raw, want := range cases {
			got, err := assignment.ParseStatus(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got)
			assert.Equal(t, raw, got.String())
		}
	})

	t.Run("rejects_anything_else_with_validation_error", func(t *testing.T) {
		for _, raw := range []string{"bogus", "ASSIGNED", "", "completed", "unknown"} {
			_, err := assignment.ParseStatus(raw)
			require.Error(t, err, raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	type transition struct {
		from, to assignment.Status
	}

	allowed := []transition{
		{assignment.Assigned, assignment.PickedUp},
		{assignment.PickedUp, assignment.InTransit},
		{assignment.InTransit, assignment.Delivered},
		// skipped scans still move forward
		{assignment.Assigned, assignment.InTransit},
		{assignment.Assigned, assignment.Delivered},
		{assignment.PickedUp, assignment.Delivered},
		// cancellation from any non-terminal status
		{assignment.Assigned, assignment.Cancelled},
		{assignment.PickedUp, assignment.Cancelled},
		{assignment.InTransit, assignment.Cancelled},
	}

	rejected := []transition{
		// backwards
		{assignment.PickedUp, assignment.Assigned},
		{assignment.InTransit, assignment.PickedUp},
		{assignment.Delivered, assignment.InTransit},
		// self transitions
		{assignment.Assigned, assignment.Assigned},
		{assignment.InTransit, assignment.InTransit},
		// out of a terminal status
		{assignment.Delivered, assignment.Delivered},
		{assignment.Delivered, assignment.Cancelled},
		{assignment.Cancelled, assignment.Assigned},
		{assignment.Cancelled, assignment.Cancelled},
	}

	t.Run("allowed_transitions", func(t *testing.T) {
		for _, tr := range allowed {
			got, err := tr.from.TransitionTo(tr.to)
			require.NoError(t, err, "%s -> %s", tr.from, tr.to)
			assert.Equal(t, tr.to, got)
		}
	})

	t.Run("rejected_transitions", func(t *testing.T) {
		for _, tr := range rejected {
			_, err := tr.from.TransitionTo(tr.to)
			require.Error(t, err, "%s -> %s", tr.from, tr.to)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("unknown_source_and_target_are_rejected", func(t *testing.T) {
		_, err := assignment.Unknown.TransitionTo(assignment.Assigned)
		require.Error(t, err)

		_, err = assignment.Assigned.TransitionTo(assignment.Unknown)
		require.Error(t, err)

		_, err = assignment.Assigned.TransitionTo(assignment.Status(42))
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, assignment.Delivered.IsTerminal())
	assert.True(t, assignment.Cancelled.IsTerminal())
	assert.False(t, assignment.Assigned.IsTerminal())
	assert.False(t, assignment.PickedUp.IsTerminal())
	assert.False(t, assignment.InTransit.IsTerminal())
}

func TestParsePriority(t *testing.T) {
	t.Run("empty_defaults_to_normal", func(t *testing.T) {
		p, err := assignment.ParsePriority("")
		require.NoError(t, err)
		assert.Equal(t, assignment.PriorityNormal, p)
	})

	t.Run("known_values_accepted", func(t *testing.T) {
		for _, raw := range []string{"low", "normal", "high", "urgent"} {
			p, err := assignment.ParsePriority(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, p.String())
		}
	})

	t.Run("unknown_value_rejected", func(t *testing.T) {
		_, err := assignment.ParsePriority("asap")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
