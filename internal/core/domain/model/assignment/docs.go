// Package assignment contains the Assignment aggregate: the single live
// mapping of one order to one courier, its status state machine, handling
// priority, the frozen order snapshot, and the append-only reassignment
// history.
//
// The aggregate enforces status transitions
// (assigned -> picked_up -> in_transit -> delivered, with cancelled reachable
// from any non-terminal status) and stamps terminal timestamps. The
// one-assignment-per-order invariant is enforced by storage through a unique
// constraint on order_id; see the postgres adapter.
package assignment
