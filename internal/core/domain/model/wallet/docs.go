// Package wallet contains the courier earnings ledger model: append-only
// wallet Transactions (per-order earnings and daily target bonuses) and the
// read-only TargetTier reference configuration.
//
// The ledger's idempotency invariants (one earning per order, one target
// bonus per courier per day) are enforced structurally by unique
// constraints in the postgres adapter, never by check-then-insert.
package wallet
