// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SlotRepoFactory provides access to the slot repository within a transaction.
	SlotRepoFactory interface {
		SlotRepository() ports.SlotRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// WalletRepoFactory provides access to the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// ReconciliationRepoFactory provides access to the reconciliation outbox within a transaction.
	ReconciliationRepoFactory interface {
		ReconciliationRepository() ports.ReconciliationRepository
	}

	// SlotUoW manages transactions for slot capacity operations.
	SlotUoW interface {
		TxManager
		SlotRepoFactory
	}

	// SlotUoWFactory creates new slot unit of work instances.
	SlotUoWFactory interface {
		Create() SlotUoW
	}

	// AssignmentUoW manages transactions for assignment operations.
	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// WalletUoW manages transactions for wallet credits. Bonus evaluation
	// also counts delivered assignments, so the assignment repository is
	// exposed alongside the wallet one.
	WalletUoW interface {
		TxManager
		WalletRepoFactory
		AssignmentRepoFactory
	}

	// WalletUoWFactory creates new wallet unit of work instances.
	WalletUoWFactory interface {
		Create() WalletUoW
	}

	// ReconciliationUoW manages transactions for the earning reconciliation outbox.
	ReconciliationUoW interface {
		TxManager
		ReconciliationRepoFactory
	}

	// ReconciliationUoWFactory creates new reconciliation unit of work instances.
	ReconciliationUoWFactory interface {
		Create() ReconciliationUoW
	}
)
