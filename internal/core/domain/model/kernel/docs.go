// Package kernel provides core domain primitives shared across the delivery
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//   - GeoPoint: a value object for courier-reported WGS84 coordinates
//
// These primitives enforce domain invariants at construction time and are
// immutable, making them safe for concurrent use.
package kernel
