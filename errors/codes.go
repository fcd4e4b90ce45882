package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lifecycle errors
const (
	// ErrCodeDisposed indicates an operation on a sequence, cursor or
	// coordinator after it was disposed.
	ErrCodeDisposed ErrorCode = "DISPOSED"
	// ErrCodeCapacityExceeded indicates a bounded reader budget is exhausted.
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates an argument or configuration value is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]bool{
	ErrCodeDisposed:         true,
	ErrCodeCapacityExceeded: true,
	ErrCodeInvalidInput:     true,
	ErrCodeInternal:         true,
}

// IsKnownCode reports whether code is one of the codes defined by this package.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}
