// Package errs provides the standardized error types used across the
// delivery service.
//
// The taxonomy mirrors how failures are mapped at the HTTP boundary:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError:
//     validation failures (HTTP 400)
//   - ObjectNotFoundError: unknown slot/order/courier/assignment (HTTP 404)
//   - ConflictError: an operation that would violate an idempotency or
//     uniqueness invariant; callers either absorb it as a no-op or map it
//     to HTTP 409
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() targeting the sentinel, so
//     errors.Is classification works anywhere in the call stack
package errs
