// Package slot contains the delivery-slot capacity model: DeliverySlot (a
// named time window shared across dates, with capacity defaults and display
// thresholds) and Availability (the lazily created per-slot-per-date
// remaining capacity).
//
// The capacity invariant, available orders never negative and never above
// the effective maximum, is validated here for single-writer paths and enforced
// by the storage layer's atomic clamped decrement for concurrent ones.
package slot
