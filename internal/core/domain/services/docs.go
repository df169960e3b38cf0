// Package services contains stateless domain services that coordinate logic
// across aggregates: the earnings calculator with its pluggable distance
// incentive strategy, and the daily target bonus tier selection.
package services
