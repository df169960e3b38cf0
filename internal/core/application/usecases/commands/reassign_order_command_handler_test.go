package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	oldCourierID := kernel.NewUUID()
	newCourierID := kernel.NewUUID()
	existing := existingAssignment(t, orderID, oldCourierID)

	cmd, err := commands.NewReassignOrderCommand(orderID, newCourierID, "Courier vehicle breakdown")
	require.NoError(t, err)

	registry := new(MockCourierRegistry)
	activeCourier(registry, newCourierID)

	repo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("AssignmentRepository").Return(repo)
	repo.On("GetByOrderID", mock.Anything, orderID).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *assignment.Assignment) bool {
		return a.CourierID().IsEqual(newCourierID) && a.Status() == assignment.Assigned
	})).Return(nil).Once()
	repo.On("AddHistory", mock.Anything, mock.MatchedBy(func(e *assignment.HistoryEntry) bool {
		return e.Reason() == "Courier vehicle breakdown" &&
			e.OldCourierID() != nil && e.OldCourierID().IsEqual(oldCourierID)
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewReassignOrderCommandHandler(factory, registry, nil)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}

func TestReassignOrderCommandHandler_Handle_HistoryFailureDoesNotUndoHandover(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	newCourierID := kernel.NewUUID()
	existing := existingAssignment(t, orderID, kernel.NewUUID())

	cmd, err := commands.NewReassignOrderCommand(orderID, newCourierID, "Route optimization")
	require.NoError(t, err)

	registry := new(MockCourierRegistry)
	activeCourier(registry, newCourierID)

	repo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("AssignmentRepository").Return(repo)
	repo.On("GetByOrderID", mock.Anything, orderID).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("AddHistory", mock.Anything, mock.Anything).
		Return(errors.New("history table unavailable")).Once()
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewReassignOrderCommandHandler(factory, registry, nil)
	require.NoError(t, h.Handle(ctx, cmd))
}

func TestReassignOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	newCourierID := kernel.NewUUID()

	cmd, err := commands.NewReassignOrderCommand(orderID, newCourierID, "Manual reassignment")
	require.NoError(t, err)

	registry := new(MockCourierRegistry)
	registry.On("GetActiveCourier", mock.Anything, newCourierID).
		Return(ports.CourierInfo{ID: newCourierID}, nil).Once()

	repo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("AssignmentRepository").Return(repo)
	repo.On("GetByOrderID", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewReassignOrderCommandHandler(factory, registry, nil)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
}

func TestReassignOrderCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewReassignOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
