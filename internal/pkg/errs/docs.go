// Package errs provides standardized error types for the load marketplace engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types that map onto the engine's error kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input (validation)
//   - ObjectNotFoundError: a referenced bid, offer or award does not exist
//   - ConflictError: an invariant violation caused by concurrent or terminal state
//   - OutOfOrderError: a lifecycle event older than the bid's latest event
//   - StoreError: a failure of the transactional store, retryable for reads only
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, never by message.
package errs
